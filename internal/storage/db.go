// Package storage provides the entry store for studytrack: the interfaces
// the analytics service depends on and their Badger implementation.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/manav03panchal/studytrack/internal/errors"
)

const (
	// AppName is the application name used for data directories.
	AppName = "studytrack"
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	path string
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := ""

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0700); err != nil {
			return nil, errors.NewSystemErrorWithOp("open database", "cannot create data directory", err)
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
		path = opts.Path
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, classifyOpenError(err)
	}

	return &DB{db: db, path: path}, nil
}

// classifyOpenError maps Badger's directory lock failure to ErrDatabaseLocked.
func classifyOpenError(err error) error {
	if strings.Contains(err.Error(), "Cannot acquire directory lock") {
		return errors.NewSystemErrorWithOp("open database", "database is in use",
			fmt.Errorf("%w: %v", errors.ErrDatabaseLocked, err))
	}
	return errors.WithStack(errors.NewSystemErrorWithOp("open database", "cannot open database", err))
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the on-disk directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
