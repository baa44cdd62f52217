package table

import (
	"fmt"
	"slices"
)

// SortKey selects the column a sort orders by. The zero SortKey selects the
// first column.
type SortKey struct {
	name   string
	index  int
	byName bool
}

// ByColumn sorts by the named column.
func ByColumn(name string) SortKey {
	return SortKey{name: name, byName: true}
}

// ByIndex sorts by the column at position i.
func ByIndex(i int) SortKey {
	return SortKey{index: i}
}

func (k SortKey) resolve(t *Table) (string, error) {
	if k.byName {
		if !t.HasColumn(k.name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColumn, k.name)
		}
		return k.name, nil
	}
	if k.index < 0 || k.index >= len(t.headers) {
		return "", fmt.Errorf("%w: index %d (table has %d columns)", ErrInvalidColumn, k.index, len(t.headers))
	}
	return t.headers[k.index], nil
}

// Sort returns a new Table with the rows ordered by the key column. With a
// nil comparator values are ordered lexically. The sort is stable. Sorting
// an empty Table returns an empty Table.
func (t *Table) Sort(key SortKey, c Comparator) (*Table, error) {
	if t.IsEmpty() {
		return New(), nil
	}
	order, err := t.sortOrder(key, c)
	if err != nil {
		return nil, err
	}
	return t.pick(order), nil
}

// SortInPlace orders the receiver's rows like Sort and returns the receiver.
func (t *Table) SortInPlace(key SortKey, c Comparator) (*Table, error) {
	if t.IsEmpty() {
		return t, nil
	}
	order, err := t.sortOrder(key, c)
	if err != nil {
		return t, err
	}
	t.columns = t.pick(order).columns
	return t, nil
}

func (t *Table) sortOrder(key SortKey, c Comparator) ([]int, error) {
	name, err := key.resolve(t)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = Lexical
	}
	col := t.columns[name]
	order := make([]int, len(col))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return c(col[a], col[b]) })
	return order, nil
}
