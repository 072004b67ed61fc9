package storage

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/manav03panchal/studytrack/internal/errors"
)

// WriteFileAtomic writes data to path through a temp file in the same
// directory, so readers never see a partial export.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".studytrack-*.tmp")
	if err != nil {
		return wrapWriteError("create temp file", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return wrapWriteError("write", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return wrapWriteError("sync", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

func wrapWriteError(op string, err error) error {
	if isDiskFullError(err) {
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	}
	if stderrors.Is(err, os.ErrPermission) {
		return errors.NewSystemErrorWithOp(op, "permission denied", errors.ErrPermissionDenied)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// isDiskFullError checks if an error indicates disk full condition.
func isDiskFullError(err error) bool {
	return stderrors.Is(err, syscall.ENOSPC)
}
