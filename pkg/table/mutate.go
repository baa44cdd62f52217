package table

import (
	"fmt"
	"slices"
)

// AddColumn appends a column named name holding values. The values are
// copied. It fails with ErrDuplicateColumn if the name is taken and with
// ErrColumnLengthMismatch if the Table has headers and len(values) differs
// from the row count.
func (t *Table) AddColumn(name string, values ...string) (*Table, error) {
	if t.HasColumn(name) {
		return t, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if !t.IsEmpty() && len(values) != t.Count() {
		return t, fmt.Errorf("%w: column %q has %d values, table has %d rows",
			ErrColumnLengthMismatch, name, len(values), t.Count())
	}
	t.init()
	t.headers = append(t.headers, name)
	t.columns[name] = slices.Clone(values)
	if t.columns[name] == nil {
		t.columns[name] = []string{}
	}
	return t, nil
}

// AddRow appends one row. If the Table has no headers yet, values become the
// headers instead. Otherwise it fails with ErrRowLengthMismatch unless there
// is exactly one value per header.
func (t *Table) AddRow(values ...string) (*Table, error) {
	t.init()
	if t.IsEmpty() {
		return t, t.defineHeaders(values)
	}
	if len(values) != len(t.headers) {
		return t, fmt.Errorf("%w: got %d fields, want %d",
			ErrRowLengthMismatch, len(values), len(t.headers))
	}
	for i, h := range t.headers {
		t.columns[h] = append(t.columns[h], values[i])
	}
	return t, nil
}

// AddRows applies AddRow to each row in order and stops at the first error.
// Rows added before the failing one remain.
func (t *Table) AddRows(rows [][]string) (*Table, error) {
	for i, row := range rows {
		if _, err := t.AddRow(row...); err != nil {
			return t, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return t, nil
}

func (t *Table) defineHeaders(headers []string) error {
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if _, dup := seen[h]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, h)
		}
		seen[h] = struct{}{}
	}
	for _, h := range headers {
		t.headers = append(t.headers, h)
		t.columns[h] = []string{}
	}
	return nil
}

// DelColumn removes the named column.
func (t *Table) DelColumn(name string) (*Table, error) {
	if _, err := t.lookup(name); err != nil {
		return t, err
	}
	t.headers = slices.DeleteFunc(t.headers, func(h string) bool { return h == name })
	delete(t.columns, name)
	return t, nil
}

// DelRow removes the row at index from every column. Negative indexes count
// back from the last row, so DelRow(-1) removes the last row.
func (t *Table) DelRow(index int) (*Table, error) {
	i, ok := t.rowIndex(index)
	if !ok {
		return t, fmt.Errorf("%w: %d (table has %d rows)", ErrRowIndexOutOfBounds, index, t.Count())
	}
	for _, h := range t.headers {
		t.columns[h] = slices.Delete(t.columns[h], i, i+1)
	}
	return t, nil
}

// RenameHeader renames column oldName to newName, keeping its position and
// values.
func (t *Table) RenameHeader(oldName, newName string) (*Table, error) {
	col, err := t.lookup(oldName)
	if err != nil {
		return t, err
	}
	if oldName == newName {
		return t, nil
	}
	if t.HasColumn(newName) {
		return t, fmt.Errorf("%w: %q", ErrDuplicateColumn, newName)
	}
	t.headers[slices.Index(t.headers, oldName)] = newName
	delete(t.columns, oldName)
	t.columns[newName] = col
	return t, nil
}

// Append adds the rows of other to t. An empty receiver takes on other's
// headers and rows; an empty other leaves t unchanged. Otherwise the headers
// must be identical, in the same order.
func (t *Table) Append(other *Table) (*Table, error) {
	if other == nil {
		return t, fmt.Errorf("%w: append of nil table", ErrInvalidTable)
	}
	if other.IsEmpty() {
		return t, nil
	}
	if t.IsEmpty() {
		c := other.Clone()
		t.headers, t.columns = c.headers, c.columns
		return t, nil
	}
	if !slices.Equal(t.headers, other.headers) {
		return t, fmt.Errorf("%w: %v vs %v", ErrHeaderMismatch, t.headers, other.headers)
	}
	for _, h := range t.headers {
		t.columns[h] = append(t.columns[h], other.columns[h]...)
	}
	return t, nil
}
