package storage

import (
	"context"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/model"
)

// EntryStore is a keyed repository of daily entries. It holds at most one
// entry per (user, date).
type EntryStore interface {
	// Get returns the entry for userID on date, or ErrKeyNotFound.
	Get(ctx context.Context, userID string, date calendar.Date) (*model.DailyEntry, error)
	// Put stores entry as the user's entry for date, replacing any existing one.
	Put(ctx context.Context, userID string, date calendar.Date, entry *model.DailyEntry) error
	// Delete removes the entry for userID on date, or returns ErrKeyNotFound.
	Delete(ctx context.Context, userID string, date calendar.Date) error
	// Query returns the user's entries within r in ascending date order.
	Query(ctx context.Context, userID string, r calendar.Range) ([]model.DailyEntry, error)
}

// ResultStore persists computed analytics outputs under per-user keys.
// Each Put replaces the previous value.
type ResultStore interface {
	PutStreak(ctx context.Context, rec *model.StreakRecord) error
	GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error)
	PutInsights(ctx context.Context, report *model.InsightReport) error
	GetInsights(ctx context.Context, userID string) (*model.InsightReport, error)
}

// Store is a complete backend.
type Store interface {
	EntryStore
	ResultStore
	// LocalUser returns the user ID of this installation, creating it on first use.
	LocalUser(ctx context.Context) (string, error)
	Close() error
}
