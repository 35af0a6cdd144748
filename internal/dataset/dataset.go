// Package dataset loads, edits and encodes the CSV table whose rows drive
// route resolution. Columns other than the one being replaced, and the order
// of rows, are carried through unchanged.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

var (
	// ErrUnreadable wraps any failure to read or parse the input table.
	ErrUnreadable = errors.New("dataset unreadable")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is an in-memory CSV table with a header row.
type Table struct {
	Header  []string
	Records [][]string
}

// Load reads a header-first CSV file from fsys.
func Load(fsys afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return Parse(data)
}

// Parse decodes CSV bytes. All records must have as many fields as the header.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrUnreadable)
	}
	return &Table{Header: rows[0], Records: rows[1:]}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Records) }

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// Value returns the cell at row, col.
func (t *Table) Value(row, col int) string {
	return t.Records[row][col]
}

// SetColumn replaces every cell of the named column, appending the column
// when the header does not have it yet.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Records) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.Records))
	}

	col, err := t.Column(name)
	if err != nil {
		t.Header = append(t.Header, name)
		for i := range t.Records {
			t.Records[i] = append(t.Records[i], values[i])
		}
		return nil
	}
	for i := range t.Records {
		t.Records[i][col] = values[i]
	}
	return nil
}

// Encode renders the table as CSV.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
