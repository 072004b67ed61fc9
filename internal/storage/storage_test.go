package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func day(s string) calendar.Date {
	return calendar.MustParse(s)
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.Equal(t, "", db.Path())
		assert.NotNil(t, db.Badger())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		assert.DirExists(t, dir)
		require.NoError(t, db.Close())
	})

	t.Run("second_open_is_locked", func(t *testing.T) {
		dir := t.TempDir()
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		defer db.Close()

		_, err = Open(Options{Path: dir})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrDatabaseLocked))
		assert.True(t, errors.IsSystemError(err))
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "studytrack")
	assert.Equal(t, "db", filepath.Base(path))
}

// =============================================================================
// CRUD Tests
// =============================================================================

func TestCRUD(t *testing.T) {
	db := setupTestDB(t)

	cfg := model.NewConfig("user-1")
	require.NoError(t, db.Set(cfg))

	exists, err := db.Exists(model.KeyConfig)
	require.NoError(t, err)
	assert.True(t, exists)

	got := &model.Config{}
	require.NoError(t, db.Get(model.KeyConfig, got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, model.KeyConfig, got.Key)

	require.NoError(t, db.Delete(model.KeyConfig))
	exists, err = db.Exists(model.KeyConfig)
	require.NoError(t, err)
	assert.False(t, exists)

	err = db.Get(model.KeyConfig, got)
	assert.True(t, IsErrKeyNotFound(err))
	assert.True(t, IsErrKeyNotFound(db.Delete(model.KeyConfig)))
}

func TestGetRange(t *testing.T) {
	db := setupTestDB(t)
	for _, d := range []string{"2025-01-01", "2025-01-05", "2025-01-10", "2025-02-01"} {
		require.NoError(t, db.Set(model.NewDailyEntry("u", day(d))))
	}
	require.NoError(t, db.Set(model.NewDailyEntry("v", day("2025-01-05"))))

	newEntry := func() *model.DailyEntry { return &model.DailyEntry{} }

	all, err := GetAllByPrefix(db, model.EntryKeyPrefix("u"), newEntry)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	bounded, err := GetRange(db, KeyRange{
		Prefix: model.EntryKeyPrefix("u"),
		From:   "2025-01-02",
		To:     "2025-01-10",
	}, newEntry)
	require.NoError(t, err)
	require.Len(t, bounded, 2)
	assert.Equal(t, day("2025-01-05"), bounded[0].Date)
	assert.Equal(t, day("2025-01-10"), bounded[1].Date)

	keys, err := db.ListByPrefix(model.PrefixEntry + ":")
	require.NoError(t, err)
	assert.Len(t, keys, 5)
}

// =============================================================================
// EntryRepo Tests
// =============================================================================

func TestEntryRepoPutGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepo(db)
	ctx := context.Background()

	entry := &model.DailyEntry{StudyHours: model.Float(3), Focus: model.Int(4), Reflection: "ok"}
	require.NoError(t, repo.Put(ctx, "u1", day("2025-03-04"), entry))
	assert.Equal(t, "entry:u1:2025-03-04", entry.Key)
	assert.False(t, entry.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "u1", day("2025-03-04"))
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, day("2025-03-04"), got.Date)
	assert.Equal(t, 3.0, got.StudyHoursOr0())
	assert.Nil(t, got.Sleep)
	assert.Equal(t, 4, got.FocusOrNeutral())
	assert.Equal(t, "ok", got.Reflection)

	_, err = repo.Get(ctx, "u1", day("2025-03-05"))
	assert.True(t, IsErrKeyNotFound(err))
	_, err = repo.Get(ctx, "u2", day("2025-03-04"))
	assert.True(t, IsErrKeyNotFound(err))
}

func TestEntryRepoPutReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "u1", day("2025-03-04"), &model.DailyEntry{Sleep: model.Float(6)}))
	require.NoError(t, repo.Put(ctx, "u1", day("2025-03-04"), &model.DailyEntry{Sleep: model.Float(8)}))

	entries, err := repo.Query(ctx, "u1", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 8.0, entries[0].SleepOr0())
}

func TestEntryRepoPutInvalid(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	ctx := context.Background()

	err := repo.Put(ctx, "", day("2025-03-04"), &model.DailyEntry{})
	assert.Error(t, err)

	err = repo.Put(ctx, "u1", calendar.Date{}, &model.DailyEntry{})
	assert.True(t, errors.Is(err, errors.ErrInvalidDate))
}

func TestEntryRepoQuery(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepo(db)
	ctx := context.Background()

	// Insert out of order; a second user shares a prefix-like ID.
	for _, d := range []string{"2025-03-10", "2025-02-28", "2025-03-01", "2025-03-14", "2024-12-31"} {
		require.NoError(t, repo.Put(ctx, "u1", day(d), &model.DailyEntry{}))
	}
	require.NoError(t, repo.Put(ctx, "u1:x", day("2025-03-02"), &model.DailyEntry{}))
	require.NoError(t, repo.Put(ctx, "u2", day("2025-03-02"), &model.DailyEntry{}))

	tests := []struct {
		name string
		rng  calendar.Range
		want []string
	}{
		{"all", calendar.Range{}, []string{"2024-12-31", "2025-02-28", "2025-03-01", "2025-03-10", "2025-03-14"}},
		{"closed", calendar.Range{From: day("2025-03-01"), To: day("2025-03-10")}, []string{"2025-03-01", "2025-03-10"}},
		{"open_end", calendar.Range{From: day("2025-03-02")}, []string{"2025-03-10", "2025-03-14"}},
		{"open_start", calendar.Range{To: day("2025-02-28")}, []string{"2024-12-31", "2025-02-28"}},
		{"empty", calendar.Range{From: day("2025-03-11"), To: day("2025-03-13")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.Query(ctx, "u1", tt.rng)
			require.NoError(t, err)
			got := make([]string, 0, len(entries))
			for _, e := range entries {
				assert.Equal(t, "u1", e.UserID)
				got = append(got, e.Date.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryRepoDelete(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "u1", day("2025-03-04"), &model.DailyEntry{}))
	require.NoError(t, repo.Delete(ctx, "u1", day("2025-03-04")))
	assert.True(t, IsErrKeyNotFound(repo.Delete(ctx, "u1", day("2025-03-04"))))
}

func TestEntryRepoCanceledContext(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Query(ctx, "u1", calendar.Range{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Put(ctx, "u1", day("2025-03-04"), &model.DailyEntry{}), context.Canceled)
}

// =============================================================================
// ResultRepo Tests
// =============================================================================

func TestResultRepo(t *testing.T) {
	repo := NewResultRepo(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.GetStreak(ctx, "u1")
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, repo.PutStreak(ctx, model.NewStreakRecord("u1", 2, 5, "grace")))
	require.NoError(t, repo.PutStreak(ctx, model.NewStreakRecord("u1", 3, 5, "grace")))
	rec, err := repo.GetStreak(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Current)
	assert.Equal(t, 5, rec.Longest)

	insights := []model.Insight{{
		Type:     model.InsightSleep,
		Message:  "msg",
		Category: model.CategoryPositive,
		Priority: model.PriorityHigh,
	}}
	report, err := model.NewInsightReport("u1", insights, 7, calendar.LastNDays(day("2025-03-14"), 14))
	require.NoError(t, err)
	require.NoError(t, repo.PutInsights(ctx, report))

	got, err := repo.GetInsights(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, insights, got.Insights)
	assert.Equal(t, "2025-03-01", got.WindowFrom)

	_, err = repo.GetInsights(ctx, "u2")
	assert.True(t, IsErrKeyNotFound(err))
}

// =============================================================================
// BadgerStore / ConfigRepo Tests
// =============================================================================

func TestBadgerStoreLocalUser(t *testing.T) {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	store := NewBadgerStore(db)
	defer store.Close()

	ctx := context.Background()
	first, err := store.LocalUser(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := store.LocalUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConfigRepoUpdate(t *testing.T) {
	repo := NewConfigRepo(setupTestDB(t))
	cfg, err := repo.Get()
	require.NoError(t, err)

	cfg.UserID = "custom"
	require.NoError(t, repo.Update(cfg))

	again, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "custom", again.UserID)
}

// =============================================================================
// File Tests
// =============================================================================

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[]`), 0600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// Overwrite leaves no temp files behind.
	require.NoError(t, WriteFileAtomic(path, []byte(`[1]`), 0600))
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	err = WriteFileAtomic(filepath.Join(dir, "missing", "x.json"), nil, 0600)
	assert.Error(t, err)
}
