// Package termindex builds the read-only mapping from term identifiers to
// the configuration files that describe them.
//
// A term identifier is a configuration file name without its extension.
// Search locations carry an explicit priority; when the same identifier is
// found more than once, the location with the lowest Priority value wins and
// the others are kept only as diagnostics.
package termindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExtension is the file extension of term configuration files.
const DefaultExtension = ".json"

// Source is one search location.
type Source struct {
	Dir       string
	Recursive bool // walk all subdirectories instead of one level
	Priority  int  // lower wins on collision
}

// Duplicate records an identifier found in more than one file.
type Duplicate struct {
	Term     string   `yaml:"term"`
	Kept     string   `yaml:"kept"`
	Shadowed []string `yaml:"shadowed"`
}

// Index maps term identifiers to configuration file locations.
// It is immutable once returned by Build.
type Index struct {
	paths      map[string]string
	duplicates map[string][]string
	skipped    []string
}

// Build scans sources in ascending Priority order and indexes every file, or
// symlink to a file, ending in ext. Missing directories are skipped. Below the
// root of a recursive source, unreadable entries are skipped and reported by
// Skipped; an unreadable root is an error.
func Build(fsys afero.Fs, ext string, sources ...Source) (*Index, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	idx := &Index{
		paths:      make(map[string]string),
		duplicates: make(map[string][]string),
	}

	for _, src := range ordered {
		ok, err := isDir(fsys, src.Dir)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", src.Dir, err)
		}
		if !ok {
			continue
		}

		if src.Recursive {
			err = idx.walk(fsys, src.Dir, ext)
		} else {
			err = idx.scanFlat(fsys, src.Dir, ext)
		}
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *Index) scanFlat(fsys afero.Fs, dir, ext string) error {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !isFile(fsys, path, e) {
			continue
		}
		idx.add(e.Name(), path, ext)
	}
	return nil
}

func (idx *Index) walk(fsys afero.Fs, root, ext string) error {
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// unreadable entries below the root are skipped, not fatal
			idx.skipped = append(idx.skipped, path)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !isFile(fsys, path, info) {
			return nil
		}
		idx.add(info.Name(), path, ext)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

func (idx *Index) add(name, path, ext string) {
	if !strings.HasSuffix(name, ext) {
		return
	}
	term := strings.TrimSuffix(name, ext)
	if _, exists := idx.paths[term]; exists {
		idx.duplicates[term] = append(idx.duplicates[term], path)
		return
	}
	idx.paths[term] = path
}

// Lookup returns the configuration file for term.
func (idx *Index) Lookup(term string) (string, bool) {
	p, ok := idx.paths[term]
	return p, ok
}

// Len returns the number of indexed identifiers.
func (idx *Index) Len() int { return len(idx.paths) }

// Terms returns all identifiers, sorted.
func (idx *Index) Terms() []string {
	out := make([]string, 0, len(idx.paths))
	for t := range idx.paths {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Duplicates returns every identifier that was found more than once,
// sorted by identifier.
func (idx *Index) Duplicates() []Duplicate {
	out := make([]Duplicate, 0, len(idx.duplicates))
	for term, shadowed := range idx.duplicates {
		out = append(out, Duplicate{
			Term:     term,
			Kept:     idx.paths[term],
			Shadowed: append([]string(nil), shadowed...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// Skipped returns the paths below a recursive source that could not be read.
func (idx *Index) Skipped() []string {
	return append([]string(nil), idx.skipped...)
}

// isFile reports whether info describes a regular file, following symlinks.
// Symlinks to directories and dangling links are not files.
func isFile(fsys afero.Fs, path string, info fs.FileInfo) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}

func isDir(fsys afero.Fs, dir string) (bool, error) {
	if dir == "" {
		return false, nil
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
