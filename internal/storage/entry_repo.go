package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/model"
)

// EntryRepo provides operations for DailyEntry entities.
type EntryRepo struct {
	db *DB
}

// NewEntryRepo creates a new entry repository.
func NewEntryRepo(db *DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Get retrieves a user's entry for date.
func (r *EntryRepo) Get(ctx context.Context, userID string, date calendar.Date) (*model.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry := &model.DailyEntry{}
	if err := r.db.Get(model.GenerateEntryKey(userID, date), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Put stores entry under (userID, date). Key, UserID and Date are taken from
// the arguments; zero timestamps are filled in.
func (r *EntryRepo) Put(ctx context.Context, userID string, date calendar.Date, entry *model.DailyEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := PrepareEntry(userID, date, entry); err != nil {
		return err
	}
	return r.db.Set(entry)
}

// Delete removes a user's entry for date.
func (r *EntryRepo) Delete(ctx context.Context, userID string, date calendar.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Delete(model.GenerateEntryKey(userID, date))
}

// Query retrieves a user's entries within rng in ascending date order.
func (r *EntryRepo) Query(ctx context.Context, userID string, rng calendar.Range) ([]model.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ptrs, err := GetRange(r.db, KeyRange{
		Prefix: model.EntryKeyPrefix(userID),
		From:   rng.From.String(),
		To:     rng.To.String(),
		Keep: func(key string) bool {
			owner, date, ok := model.ParseEntryKey(key)
			return ok && owner == userID && rng.Contains(date)
		},
	}, func() *model.DailyEntry {
		return &model.DailyEntry{}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "query entries for %s", userID)
	}

	entries := make([]model.DailyEntry, 0, len(ptrs))
	for _, p := range ptrs {
		entries = append(entries, *p)
	}
	return entries, nil
}

// PrepareEntry normalises entry for storage under (userID, date). Shared by
// every EntryStore implementation.
func PrepareEntry(userID string, date calendar.Date, entry *model.DailyEntry) error {
	if userID == "" {
		return fmt.Errorf("put entry: empty user ID")
	}
	if !date.IsValid() {
		return errors.Wrapf(errors.ErrInvalidDate, "put entry for %q", date.String())
	}

	entry.Key = model.GenerateEntryKey(userID, date)
	entry.UserID = userID
	entry.Date = date

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = now
	}
	return nil
}

var _ EntryStore = (*EntryRepo)(nil)
