package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/logging"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/service"
	"github.com/manav03panchal/studytrack/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	streak      *model.StreakRecord
	report      *model.InsightReport
	stats       *service.Stats
	loggedToday bool
	loadedFor   calendar.Date
	lastLoad    time.Time

	ctx      context.Context
	analyzer *service.Analyzer
	userID   string

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	// Configuration
	tickInterval    time.Duration
	refreshInterval time.Duration
	maxInsights     int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Ctx      context.Context
	Analyzer *service.Analyzer
	UserID   string

	// TickInterval drives message expiry and day rollover checks.
	TickInterval time.Duration
	// RefreshInterval is how often data is reloaded without a key press.
	RefreshInterval time.Duration
	MaxInsights     int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}
	if config.TickInterval == 0 {
		config.TickInterval = time.Second
	}
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Minute
	}
	if config.MaxInsights == 0 {
		config.MaxInsights = 5
	}

	return &DashboardModel{
		ctx:             config.Ctx,
		analyzer:        config.Analyzer,
		userID:          config.UserID,
		tickInterval:    config.TickInterval,
		refreshInterval: config.RefreshInterval,
		maxInsights:     config.MaxInsights,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.messageExp.IsZero() && now.After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		// Reload at midnight so the streak reflects the new day.
		if m.needsReload(now) {
			m.loadData()
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m *DashboardModel) needsReload(now time.Time) bool {
	if m.lastLoad.IsZero() {
		return false
	}
	if now.Sub(m.lastLoad) >= m.refreshInterval {
		return true
	}
	return m.analyzer != nil && !m.analyzer.Today().Equal(m.loadedFor)
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "l":
		m.setMessage("Use 'studytrack log --study 2h --focus 4' to log today", 3*time.Second)
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	streak := NewStreakComponent(m.streak, weekOf(m.stats), m.loggedToday, m.width)
	sections = append(sections, streak.View())
	sections = append(sections, NewStatsComponent(m.stats, m.width).View())

	minEntries := 0
	if m.analyzer != nil {
		minEntries = m.analyzer.MinEntries
	}
	sections = append(sections, NewInsightsComponent(m.report, minEntries, m.width, m.maxInsights).View())

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Study Dashboard")
	now := time.Now()
	if m.analyzer != nil && m.analyzer.Clock != nil {
		now = m.analyzer.Clock()
	}
	timeStr := StyleSubtitle.Render(now.Format("Mon Jan 2, 15:04"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData recomputes streak, insights and stats for the user.
func (m *DashboardModel) loadData() {
	if m.analyzer == nil {
		return
	}
	start := time.Now()

	snap, err := m.analyzer.Refresh(m.ctx, m.userID)
	if err != nil {
		m.err = err
		return
	}
	stats, err := m.analyzer.Stats(m.ctx, m.userID)
	if err != nil {
		m.err = err
		return
	}

	_, err = m.analyzer.Entries.Get(m.ctx, m.userID, snap.Today)
	switch {
	case err == nil:
		m.loggedToday = true
	case storage.IsErrKeyNotFound(err):
		m.loggedToday = false
	default:
		m.err = err
		return
	}

	m.streak = snap.Streak
	m.report = snap.Report
	m.stats = stats
	m.loadedFor = snap.Today
	m.lastLoad = start
	m.err = nil

	logging.DebugContext(m.ctx, "dashboard refreshed",
		logging.KeyUser, m.userID,
		logging.KeyDuration, time.Since(start),
	)
}

func weekOf(stats *service.Stats) (wp analytics.WeekProgress) {
	if stats != nil {
		wp = stats.Week
	}
	return wp
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	m := NewDashboardModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
