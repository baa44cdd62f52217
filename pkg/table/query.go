package table

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// CountHeader names the count column produced by Tally, Top and Bottom.
const CountHeader = "Count"

// Select returns a new Table holding only the named columns, in the order
// given.
func (t *Table) Select(names ...string) (*Table, error) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, err := t.lookup(name); err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q selected twice", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}
	if len(names) == 0 {
		return New(), nil
	}
	out := newWithHeaders(names)
	for _, name := range names {
		out.columns[name] = slices.Clone(t.columns[name])
	}
	return out, nil
}

// GetColumns is an alias for Select.
func (t *Table) GetColumns(names ...string) (*Table, error) {
	return t.Select(names...)
}

// Where returns a new Table with the rows whose value in column name
// satisfies cond. A nil cond keeps every row; a nil *Comparison keeps none.
// When no row matches the result is an empty Table, which is distinct from
// the ErrInvalidColumn returned for a missing column.
func (t *Table) Where(name string, cond Predicate) (*Table, error) {
	col, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return t.Clone(), nil
	}
	var keep []int
	for i, v := range col {
		if cond.Match(v) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return New(), nil
	}
	return t.pick(keep), nil
}

// GetRows is an alias for Where.
func (t *Table) GetRows(name string, cond Predicate) (*Table, error) {
	return t.Where(name, cond)
}

// Tally counts the distinct values of column name. The result has two
// columns, the value (headed by name) and its count (headed by CountHeader),
// with one row per distinct value in order of first occurrence.
func (t *Table) Tally(name string) (*Table, error) {
	values, counts, err := t.tally(name)
	if err != nil {
		return nil, err
	}
	return tallyTable(name, values, counts), nil
}

// Top returns the n most frequent values of column name with their counts.
// Values with equal counts keep their first occurrence order.
func (t *Table) Top(name string, n int) (*Table, error) {
	return t.ranked(name, n, func(a, b int) int { return cmp.Compare(b, a) })
}

// Bottom returns the n least frequent values of column name with their
// counts. Values with equal counts keep their first occurrence order.
func (t *Table) Bottom(name string, n int) (*Table, error) {
	return t.ranked(name, n, cmp.Compare[int])
}

func (t *Table) ranked(name string, n int, order func(a, b int) int) (*Table, error) {
	values, counts, err := t.tally(name)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return order(counts[a], counts[b]) })
	idx = idx[:max(0, min(n, len(idx)))]

	rv := make([]string, len(idx))
	rc := make([]int, len(idx))
	for k, i := range idx {
		rv[k], rc[k] = values[i], counts[i]
	}
	return tallyTable(name, rv, rc), nil
}

func (t *Table) tally(name string) ([]string, []int, error) {
	col, err := t.lookup(name)
	if err != nil {
		return nil, nil, err
	}
	pos := make(map[string]int)
	var values []string
	var counts []int
	for _, v := range col {
		i, ok := pos[v]
		if !ok {
			i = len(values)
			pos[v] = i
			values = append(values, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return values, counts, nil
}

func tallyTable(name string, values []string, counts []int) *Table {
	countName := uniqueName(CountHeader, func(s string) bool { return s == name })
	out := newWithHeaders([]string{name, countName})
	out.columns[name] = slices.Clone(values)
	if out.columns[name] == nil {
		out.columns[name] = []string{}
	}
	cc := make([]string, len(counts))
	for i, c := range counts {
		cc[i] = strconv.Itoa(c)
	}
	out.columns[countName] = cc
	return out
}

// uniqueName prefixes name with underscores until taken reports false.
func uniqueName(name string, taken func(string) bool) string {
	for taken(name) {
		name = "_" + name
	}
	return name
}
