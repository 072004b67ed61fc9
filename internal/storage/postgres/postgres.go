// Package postgres implements storage.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/logging"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS daily_entries (
	user_id      TEXT NOT NULL,
	entry_date   DATE NOT NULL,
	study_hours  DOUBLE PRECISION,
	break_time   DOUBLE PRECISION,
	sleep        DOUBLE PRECISION,
	stress_level INTEGER,
	focus        INTEGER,
	reflection   TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, entry_date)
);
CREATE TABLE IF NOT EXISTS streaks (
	user_id      TEXT PRIMARY KEY,
	current      INTEGER NOT NULL,
	longest      INTEGER NOT NULL,
	policy       TEXT NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS insight_reports (
	user_id        TEXT PRIMARY KEY,
	id             TEXT NOT NULL,
	insights       JSONB NOT NULL,
	entry_count    INTEGER NOT NULL,
	window_from    TEXT NOT NULL,
	window_to      TEXT NOT NULL,
	last_generated TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS app_config (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const entryColumns = `user_id, entry_date, study_hours, break_time, sleep, stress_level, focus, reflection, created_at, updated_at`

// Store is a PostgreSQL-backed storage.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn and creates the tables if they do not exist.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logging.ErrorContext(ctx, "failed to connect to postgres", logging.KeyDSN, dsn, logging.KeyError, err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logging.DebugContext(ctx, "postgres store ready", logging.KeyDSN, dsn)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// --- EntryStore ---

// Get returns the user's entry for date.
func (s *Store) Get(ctx context.Context, userID string, date calendar.Date) (*model.DailyEntry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM daily_entries WHERE user_id = $1 AND entry_date = $2::date`,
		userID, date.String())

	entry, err := scanEntry(row)
	if err != nil {
		return nil, notFound(err)
	}
	return entry, nil
}

// Put upserts the user's entry for date.
func (s *Store) Put(ctx context.Context, userID string, date calendar.Date, entry *model.DailyEntry) error {
	if err := storage.PrepareEntry(userID, date, entry); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_entries (`+entryColumns+`)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			study_hours = EXCLUDED.study_hours,
			break_time = EXCLUDED.break_time,
			sleep = EXCLUDED.sleep,
			stress_level = EXCLUDED.stress_level,
			focus = EXCLUDED.focus,
			reflection = EXCLUDED.reflection,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`,
		userID, date.String(), entry.StudyHours, entry.BreakTime, entry.Sleep,
		entry.StressLevel, entry.Focus, entry.Reflection, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// Delete removes the user's entry for date.
func (s *Store) Delete(ctx context.Context, userID string, date calendar.Date) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM daily_entries WHERE user_id = $1 AND entry_date = $2::date`,
		userID, date.String())
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrKeyNotFound
	}
	return nil
}

// Query returns the user's entries within r in ascending date order.
func (s *Store) Query(ctx context.Context, userID string, r calendar.Range) ([]model.DailyEntry, error) {
	where, args := rangeClause(userID, r)
	rows, err := s.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM daily_entries WHERE `+where+` ORDER BY entry_date ASC`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []model.DailyEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// rangeClause builds the WHERE clause for a user and an optionally open range.
func rangeClause(userID string, r calendar.Range) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}
	if !r.From.IsZero() {
		args = append(args, r.From.String())
		conds = append(conds, fmt.Sprintf("entry_date >= $%d::date", len(args)))
	}
	if !r.To.IsZero() {
		args = append(args, r.To.String())
		conds = append(conds, fmt.Sprintf("entry_date <= $%d::date", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func scanEntry(row pgx.Row) (*model.DailyEntry, error) {
	var e model.DailyEntry
	var date time.Time
	err := row.Scan(&e.UserID, &date, &e.StudyHours, &e.BreakTime, &e.Sleep,
		&e.StressLevel, &e.Focus, &e.Reflection, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Date = calendar.FromTime(date)
	e.Key = model.GenerateEntryKey(e.UserID, e.Date)
	return &e, nil
}

// --- ResultStore ---

// PutStreak replaces the user's streak record.
func (s *Store) PutStreak(ctx context.Context, rec *model.StreakRecord) error {
	rec.Key = model.GenerateStreakKey(rec.UserID)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO streaks (user_id, current, longest, policy, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			current = EXCLUDED.current,
			longest = EXCLUDED.longest,
			policy = EXCLUDED.policy,
			last_updated = EXCLUDED.last_updated`,
		rec.UserID, rec.Current, rec.Longest, rec.Policy, rec.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

// GetStreak returns the user's last streak record.
func (s *Store) GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	rec := &model.StreakRecord{}
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, current, longest, policy, last_updated FROM streaks WHERE user_id = $1`,
		userID).Scan(&rec.UserID, &rec.Current, &rec.Longest, &rec.Policy, &rec.LastUpdated)
	if err != nil {
		return nil, notFound(err)
	}
	rec.Key = model.GenerateStreakKey(userID)
	return rec, nil
}

// PutInsights replaces the user's insight report.
func (s *Store) PutInsights(ctx context.Context, report *model.InsightReport) error {
	report.Key = model.GenerateInsightsKey(report.UserID)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO insight_reports (user_id, id, insights, entry_count, window_from, window_to, last_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id,
			insights = EXCLUDED.insights,
			entry_count = EXCLUDED.entry_count,
			window_from = EXCLUDED.window_from,
			window_to = EXCLUDED.window_to,
			last_generated = EXCLUDED.last_generated`,
		report.UserID, report.ID, report.Insights, report.EntryCount,
		report.WindowFrom, report.WindowTo, report.LastGenerated)
	if err != nil {
		return fmt.Errorf("upsert insight report: %w", err)
	}
	return nil
}

// GetInsights returns the user's last insight report.
func (s *Store) GetInsights(ctx context.Context, userID string) (*model.InsightReport, error) {
	report := &model.InsightReport{}
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, id, insights, entry_count, window_from, window_to, last_generated
		FROM insight_reports WHERE user_id = $1`, userID).
		Scan(&report.UserID, &report.ID, &report.Insights, &report.EntryCount,
			&report.WindowFrom, &report.WindowTo, &report.LastGenerated)
	if err != nil {
		return nil, notFound(err)
	}
	report.Key = model.GenerateInsightsKey(userID)
	return report, nil
}

// LocalUser returns the installation's user ID, creating it on first use.
func (s *Store) LocalUser(ctx context.Context) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	// Insert-if-absent then read back, so concurrent first runs agree.
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO app_config (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		model.KeyConfig, id.String()); err != nil {
		return "", fmt.Errorf("init local user: %w", err)
	}

	var userID string
	if err := s.pool.QueryRow(ctx, `SELECT value FROM app_config WHERE key = $1`, model.KeyConfig).Scan(&userID); err != nil {
		return "", fmt.Errorf("read local user: %w", err)
	}
	return userID, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrKeyNotFound
	}
	return err
}

// --- Compile-time assertions ---
var _ storage.EntryStore = (*Store)(nil)
var _ storage.ResultStore = (*Store)(nil)
var _ storage.Store = (*Store)(nil)
