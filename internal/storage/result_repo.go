package storage

import (
	"context"

	"github.com/manav03panchal/studytrack/internal/model"
)

// ResultRepo stores streak records and insight reports.
type ResultRepo struct {
	db *DB
}

// NewResultRepo creates a new result repository.
func NewResultRepo(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// PutStreak replaces the user's streak record.
func (r *ResultRepo) PutStreak(ctx context.Context, rec *model.StreakRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.Key = model.GenerateStreakKey(rec.UserID)
	return r.db.Set(rec)
}

// GetStreak retrieves the user's last streak record.
func (r *ResultRepo) GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := &model.StreakRecord{}
	if err := r.db.Get(model.GenerateStreakKey(userID), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// PutInsights replaces the user's insight report.
func (r *ResultRepo) PutInsights(ctx context.Context, report *model.InsightReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	report.Key = model.GenerateInsightsKey(report.UserID)
	return r.db.Set(report)
}

// GetInsights retrieves the user's last insight report.
func (r *ResultRepo) GetInsights(ctx context.Context, userID string) (*model.InsightReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report := &model.InsightReport{}
	if err := r.db.Get(model.GenerateInsightsKey(userID), report); err != nil {
		return nil, err
	}
	return report, nil
}

var _ ResultStore = (*ResultRepo)(nil)

// BadgerStore bundles the Badger repositories into a Store.
type BadgerStore struct {
	*EntryRepo
	*ResultRepo
	DB *DB
}

// NewBadgerStore wraps db as a Store. Closing the store closes db.
func NewBadgerStore(db *DB) *BadgerStore {
	return &BadgerStore{
		EntryRepo:  NewEntryRepo(db),
		ResultRepo: NewResultRepo(db),
		DB:         db,
	}
}

// LocalUser returns the user ID kept in the config singleton.
func (s *BadgerStore) LocalUser(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cfg, err := NewConfigRepo(s.DB).Get()
	if err != nil {
		return "", err
	}
	return cfg.UserID, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.DB.Close()
}

var _ Store = (*BadgerStore)(nil)
