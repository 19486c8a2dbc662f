// Package checkpoint writes a String Catalog back to disk between languages.
//
// Every write encodes the whole document, moves the previous file to a
// sibling backup (<path>.original) and then renames a fully written
// temporary file into place, so the target path always holds either the
// previous or the new complete document.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valpere/xcstran/internal/catalog"
	"github.com/valpere/xcstran/internal/logger"
)

// BackupSuffix is appended to the target path to form the backup path.
const BackupSuffix = ".original"

// Options configures a Writer.
type Options struct {
	// SkipBackup disables moving the previous file aside before each write.
	SkipBackup bool
	Logger     logger.Logger
}

// Writer persists a document to a fixed path.
type Writer struct {
	path   string
	opts   Options
	writes int
}

// NewWriter returns a Writer targeting path.
func NewWriter(path string, opts Options) *Writer {
	return &Writer{path: path, opts: opts}
}

// Path returns the target file path.
func (w *Writer) Path() string {
	return w.path
}

// BackupPath returns the sibling path the previous contents are moved to.
func (w *Writer) BackupPath() string {
	return w.path + BackupSuffix
}

// Writes returns how many checkpoints have been written successfully.
func (w *Writer) Writes() int {
	return w.writes
}

// Persist encodes doc and replaces the target file with it. A failed backup
// is logged and does not stop the write.
func (w *Writer) Persist(doc *catalog.Document) error {
	data, err := catalog.Encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(w.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}

	if !w.opts.SkipBackup {
		if err := w.backup(); err != nil {
			w.opts.Logger.Warn().Err(err).Str("path", w.path).Msg("backup failed, continuing without it")
		}
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("replacing %s: %w", w.path, err)
	}

	w.writes++
	return nil
}

// backup moves the current target file to BackupPath, replacing any older
// backup. A missing target is not an error.
func (w *Writer) backup() error {
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := os.Remove(w.BackupPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if err := os.Rename(w.path, w.BackupPath()); err != nil {
		return fmt.Errorf("moving %s to backup: %w", w.path, err)
	}
	return nil
}
