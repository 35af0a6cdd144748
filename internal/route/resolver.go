// Package route resolves landing paths for (term, entity) pairs.
//
// Resolution looks the term up in a termindex.Index, reads the JSON
// configuration it points to, takes the primary path key or the fallback
// key, and substitutes the placeholder with the lowercased entity name.
// Every failure is reported as a classified *Error, never as a panic.
package route

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mfulz/landingroute/internal/termindex"
	"github.com/spf13/afero"
)

const (
	DefaultPrimaryKey  = "ruta_landing"
	DefaultFallbackKey = "directorio_de_archivo_en_hdfs"
	DefaultPlaceholder = "$ENTIDAD"
)

var errNotObject = errors.New("configuration is not a JSON object")

// Options tunes the keys and placeholder. Zero values take the defaults.
type Options struct {
	PrimaryKey  string
	FallbackKey string
	Placeholder string
	Extension   string // only used to render FILE_NOT_FOUND details
}

// Result holds exactly one of Path or Err.
type Result struct {
	Path string
	Err  *Error
}

// OK reports whether a path was resolved.
func (r Result) OK() bool { return r.Err == nil }

// Cell is the value written into the dataset's route column.
func (r Result) Cell() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Path
}

// Resolver resolves routes against a fixed index. It holds no mutable state;
// configuration files are re-read on every call.
type Resolver struct {
	fs    afero.Fs
	index *termindex.Index
	opts  Options
}

// NewResolver returns a Resolver reading configuration files from fsys.
func NewResolver(fsys afero.Fs, index *termindex.Index, opts Options) *Resolver {
	if opts.PrimaryKey == "" {
		opts.PrimaryKey = DefaultPrimaryKey
	}
	if opts.FallbackKey == "" {
		opts.FallbackKey = DefaultFallbackKey
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Extension == "" {
		opts.Extension = termindex.DefaultExtension
	}
	return &Resolver{fs: fsys, index: index, opts: opts}
}

// Resolve computes the landing path for term and entity.
func (r *Resolver) Resolve(term, entity string) Result {
	path, ok := r.index.Lookup(term)
	if !ok {
		return fail(CodeFileNotFound, term+r.opts.Extension)
	}

	record, err := r.load(path)
	if err != nil {
		return fail(CodeJSONReadError, err.Error())
	}

	raw := stringValue(record, r.opts.PrimaryKey)
	if raw == "" {
		raw = stringValue(record, r.opts.FallbackKey)
	}
	if raw == "" {
		return fail(CodeNoValidRouteKey, "")
	}

	resolved := strings.ReplaceAll(raw, r.opts.Placeholder, strings.ToLower(entity))
	if strings.TrimSpace(resolved) == "" {
		return fail(CodeInvalidAfterSubst, "")
	}
	return Result{Path: resolved}
}

func (r *Resolver) load(path string) (map[string]any, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errNotObject
	}
	return record, nil
}

// stringValue returns the trimmed string at key, or "" when the key is
// missing, not a string, or blank.
func stringValue(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return strings.TrimSpace(s)
}

func fail(code Code, detail string) Result {
	return Result{Err: &Error{Code: code, Detail: detail}}
}
