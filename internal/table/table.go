// Package table is a small delimited-text table store: load, filter,
// left-merge and write back, preserving row order and the header.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is an in-memory CSV table with named columns
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// New creates an empty table with the given header
func New(header ...string) *Table {
	t := &Table{header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
}

// Read loads a CSV file whose first record is the header
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadFrom loads a CSV table from r
func ReadFrom(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	t := New(records[0]...)
	for _, rec := range records[1:] {
		t.Append(rec...)
	}
	return t, nil
}

// Write stores the table as CSV, creating parent directories
func (t *Table) Write(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create table dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close table: %w", closeErr)
		}
	}()

	return t.WriteTo(f)
}

// WriteTo writes the header and rows as CSV
func (t *Table) WriteTo(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := writer.WriteAll(t.rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Header returns a copy of the column names
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns the position of a named column
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a named column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Append adds a row, padding or truncating it to the header width
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.header))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Get returns a cell by row and column name; missing columns read as empty
func (t *Table) Get(row int, column string) string {
	i, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.rows[row][i]
}

// Set writes a cell by row and column name
func (t *Table) Set(row int, column, value string) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	t.rows[row][i] = value
	return nil
}

// AddColumn appends a column filled with def. It is a no-op when the
// column already exists.
func (t *Table) AddColumn(name, def string) {
	if t.HasColumn(name) {
		return
	}
	t.header = append(t.header, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], def)
	}
	t.reindex()
}

// Values returns one column as a slice, in row order
func (t *Table) Values(column string) []string {
	values := make([]string, 0, len(t.rows))
	for i := range t.rows {
		values = append(values, t.Get(i, column))
	}
	return values
}

// Filter returns the rows whose column equals value, in their original order
func (t *Table) Filter(column, value string) *Table {
	out := New(t.header...)
	for i, row := range t.rows {
		if t.Get(i, column) == value {
			out.Append(row...)
		}
	}
	return out
}

// LeftMerge joins right onto t where t[leftKey] == right[rightKey]. Every
// row of t is kept in order; the first matching right row supplies the
// right-hand cells and unmatched rows get empty cells. Right columns whose
// names already exist in t are suffixed with "_right".
func (t *Table) LeftMerge(right *Table, leftKey, rightKey string) (*Table, error) {
	if !t.HasColumn(leftKey) {
		return nil, fmt.Errorf("left table has no column %q", leftKey)
	}
	rk, ok := right.Column(rightKey)
	if !ok {
		return nil, fmt.Errorf("right table has no column %q", rightKey)
	}

	header := t.Header()
	for _, name := range right.header {
		if t.HasColumn(name) {
			name += "_right"
		}
		header = append(header, name)
	}

	first := make(map[string]int, len(right.rows))
	for i := len(right.rows) - 1; i >= 0; i-- {
		first[right.rows[i][rk]] = i
	}

	out := New(header...)
	for i, row := range t.rows {
		merged := append([]string(nil), row...)
		if j, ok := first[t.Get(i, leftKey)]; ok {
			merged = append(merged, right.rows[j]...)
		}
		out.Append(merged...)
	}
	return out, nil
}
