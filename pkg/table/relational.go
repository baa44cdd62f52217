package table

import (
	"fmt"
	"slices"
)

// keyColumns validates the arguments shared by Join, Union and Intersect and
// returns both key columns. An empty col2 means col.
func (t *Table) keyColumns(other *Table, col, col2 string) ([]string, []string, error) {
	if other == nil {
		return nil, nil, fmt.Errorf("%w: nil table", ErrInvalidTable)
	}
	if col2 == "" {
		col2 = col
	}
	left, err := t.lookup(col)
	if err != nil {
		return nil, nil, err
	}
	right, err := other.lookup(col2)
	if err != nil {
		return nil, nil, fmt.Errorf("second table: %w", err)
	}
	return left, right, nil
}

// Join returns the inner equality join of t and other on t's column col and
// other's column col2 (col when col2 is empty). Each row of t produces one
// output row per matching row of other, in other's row order; rows without a
// match are dropped.
//
// The result headers are t's headers followed by other's. Any header of other
// that collides with one of t's is prefixed with "_", repeatedly, until it is
// unique. When nothing matches the result has the headers and no rows.
func (t *Table) Join(other *Table, col, col2 string) (*Table, error) {
	left, right, err := t.keyColumns(other, col, col2)
	if err != nil {
		return nil, err
	}

	headers := append(slices.Clone(t.headers), joinHeaders(t.headers, other.headers)...)
	out := newWithHeaders(headers)

	matches := make(map[string][]int, len(right))
	for j, v := range right {
		matches[v] = append(matches[v], j)
	}

	for i, v := range left {
		for _, j := range matches[v] {
			for k, h := range t.headers {
				out.columns[headers[k]] = append(out.columns[headers[k]], t.columns[h][i])
			}
			for k, h := range other.headers {
				name := headers[len(t.headers)+k]
				out.columns[name] = append(out.columns[name], other.columns[h][j])
			}
		}
	}
	return out, nil
}

// joinHeaders returns the names other's headers take in a join with a table
// having headers mine.
func joinHeaders(mine, theirs []string) []string {
	taken := make(map[string]struct{}, len(mine)+len(theirs))
	for _, h := range mine {
		taken[h] = struct{}{}
	}
	for _, h := range theirs {
		taken[h] = struct{}{}
	}
	isTaken := func(s string) bool {
		_, ok := taken[s]
		return ok
	}

	out := make([]string, len(theirs))
	for i, h := range theirs {
		if !slices.Contains(mine, h) {
			out[i] = h
			continue
		}
		name := uniqueName("_"+h, isTaken)
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

// Union returns the distinct values found in t's column col or other's
// column col2 (col when col2 is empty): first t's values in first occurrence
// order, then the values only other has.
func (t *Table) Union(other *Table, col, col2 string) ([]string, error) {
	left, right, err := t.keyColumns(other, col, col2)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(left)+len(right))
	out := []string{}
	for _, v := range slices.Concat(left, right) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Intersect returns the distinct values found in both t's column col and
// other's column col2 (col when col2 is empty), in t's first occurrence order.
func (t *Table) Intersect(other *Table, col, col2 string) ([]string, error) {
	left, right, err := t.keyColumns(other, col, col2)
	if err != nil {
		return nil, err
	}
	in := make(map[string]struct{}, len(right))
	for _, v := range right {
		in[v] = struct{}{}
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range left {
		if _, ok := in[v]; !ok {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
