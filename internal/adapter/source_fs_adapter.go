// Package adapter contains the infrastructure adapters the predeploy domain
// relies on: the filesystem, HTML splitting, syntax checking and the
// reference minifier.
package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/predeploy/internal/model"
)

const defaultFileMode os.FileMode = 0o644

// SourceFSAdapter abstracts the filesystem operations the workflow needs.
// It hides direct `os` access so the workflow logic can be tested without
// touching the disk. Every error it returns wraps model.ErrIO.
type SourceFSAdapter interface {
	// ResolvePath expands a leading ~ and makes the path absolute.
	ResolvePath(path m.Path) (m.Path, error)

	// ReadFile loads a whole file.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the workflow can check it
	// exists and is a regular file.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFileAtomic replaces path with content through a temporary file
	// in the same directory. On failure the original file is left as it
	// was. An existing file keeps its permissions.
	WriteFileAtomic(path m.Path, content []byte) error
}

// LocalSourceFSAdapter is the SourceFSAdapter backed by the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ResolvePath expands ~ and returns an absolute, cleaned path.
func (a *LocalSourceFSAdapter) ResolvePath(path m.Path) (m.Path, error) {
	p := string(path)

	if p == "~" || strings.HasPrefix(p, "~"+string(os.PathSeparator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: resolve %s: %w", m.ErrIO, path, err)
		}

		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", m.ErrIO, path, err)
	}

	return m.Path(abs), nil
}

// ReadFile loads a file from disk and returns its contents.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", m.ErrIO, path, err)
	}

	return data, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", m.ErrIO, path, err)
	}

	return info, nil
}

// WriteFileAtomic writes content to a temp file next to path and renames it
// over path.
func (a *LocalSourceFSAdapter) WriteFileAtomic(path m.Path, content []byte) error {
	target := string(path)
	mode := defaultFileMode

	info, err := os.Stat(target)

	switch {
	case err == nil && !info.Mode().IsRegular():
		return fmt.Errorf("%w: write %s: not a regular file", m.ErrIO, path)
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: stat %s: %w", m.ErrIO, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", m.ErrIO, path, err)
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", m.ErrIO, tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", m.ErrIO, tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", m.ErrIO, tmpName, err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", m.ErrIO, tmpName, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("%w: rename %s: %w", m.ErrIO, path, err)
	}

	committed = true

	return nil
}
