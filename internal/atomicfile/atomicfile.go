// Package atomicfile replaces files all-or-nothing and detects targets that
// another process is holding open.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked reports that the target is held open or locked elsewhere.
var ErrLocked = errors.New("file is locked by another process")

// Probe reports ErrLocked if path exists and another process holds it.
// A missing path is not an error. Write permission on path itself is not
// required, since WriteFile replaces it by rename.
func Probe(path string) error {
	f, err := os.OpenFile(path, probeFlag, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if isLockErr(err) {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return err
	}
	defer f.Close()

	if err := tryLock(f); err != nil {
		if isLockErr(err) {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return err
	}
	return nil
}

// WriteFile writes data to a temp file next to path, syncs it, and renames it
// over path. On failure path is left untouched and the temp file is removed.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, perm)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		if isLockErr(err) {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return err
	}
	// best effort: persist the rename
	_ = syncDir(dir)
	return nil
}
