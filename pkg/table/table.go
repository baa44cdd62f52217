package table

import (
	"fmt"
	"iter"
	"slices"
)

// Table is a column-oriented table of string values.
//
// The zero value is an empty Table ready for use.
type Table struct {
	headers []string
	columns map[string][]string
}

// New returns an empty Table.
func New() *Table {
	return &Table{columns: make(map[string][]string)}
}

// FromRows builds a Table from rows. The first row supplies the headers and
// every following row must have exactly as many values.
func FromRows(rows [][]string) (*Table, error) {
	t := New()
	if _, err := t.AddRows(rows); err != nil {
		return nil, err
	}
	return t, nil
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := newWithHeaders(t.headers)
	for _, h := range t.headers {
		c.columns[h] = slices.Clone(t.columns[h])
	}
	return c
}

// newWithHeaders returns a Table with a copy of headers and empty columns.
func newWithHeaders(headers []string) *Table {
	t := &Table{
		headers: slices.Clone(headers),
		columns: make(map[string][]string, len(headers)),
	}
	for _, h := range headers {
		t.columns[h] = []string{}
	}
	return t
}

func (t *Table) init() {
	if t.columns == nil {
		t.columns = make(map[string][]string)
	}
}

// Headers returns a copy of the column names in column order.
func (t *Table) Headers() []string {
	return slices.Clone(t.headers)
}

// HasColumn reports whether name is one of the headers.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// IsEmpty reports whether the Table has no headers.
func (t *Table) IsEmpty() bool {
	return len(t.headers) == 0
}

// Count returns the number of rows.
func (t *Table) Count() int {
	if len(t.headers) == 0 {
		return 0
	}
	return len(t.columns[t.headers[0]])
}

// CountValue returns the number of rows whose value in column name equals value.
func (t *Table) CountValue(name, value string) (int, error) {
	col, err := t.lookup(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range col {
		if v == value {
			n++
		}
	}
	return n, nil
}

// Column returns a copy of the named column, or an empty slice if no such
// column exists.
func (t *Table) Column(name string) []string {
	col, ok := t.columns[name]
	if !ok {
		return []string{}
	}
	return slices.Clone(col)
}

// Row returns a copy of the row at index, or an empty slice if index is out
// of bounds. Negative indexes count back from the last row.
func (t *Table) Row(index int) []string {
	i, ok := t.rowIndex(index)
	if !ok {
		return []string{}
	}
	return t.materialize(i)
}

// Rows iterates over the rows in storage order. Each yielded row is a fresh
// copy.
func (t *Table) Rows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for i := range t.Count() {
			if !yield(i, t.materialize(i)) {
				return
			}
		}
	}
}

// Equal reports whether t and other have the same headers in the same order
// and the same values in every column.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(t.headers, other.headers) {
		return false
	}
	for _, h := range t.headers {
		if !slices.Equal(t.columns[h], other.columns[h]) {
			return false
		}
	}
	return true
}

// lookup returns the backing slice for name or ErrInvalidColumn.
func (t *Table) lookup(name string) ([]string, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, name)
	}
	return col, nil
}

// rowIndex resolves a possibly negative row index.
func (t *Table) rowIndex(index int) (int, bool) {
	n := t.Count()
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return 0, false
	}
	return index, true
}

func (t *Table) materialize(i int) []string {
	row := make([]string, len(t.headers))
	for j, h := range t.headers {
		row[j] = t.columns[h][i]
	}
	return row
}

// pick builds a new Table with the given headers holding the rows at indexes.
func (t *Table) pick(indexes []int) *Table {
	out := newWithHeaders(t.headers)
	for _, h := range t.headers {
		src := t.columns[h]
		dst := make([]string, len(indexes))
		for k, i := range indexes {
			dst[k] = src[i]
		}
		out.columns[h] = dst
	}
	return out
}
