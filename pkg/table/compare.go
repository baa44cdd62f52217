package table

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two cell values, returning a negative number when a
// sorts before b, zero when they are equal, and a positive number otherwise.
type Comparator func(a, b string) int

// Lexical orders values by byte-wise string comparison. It is the default
// ordering used by Sort.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// Numeric orders values as float64 numbers. Values that do not parse, and
// NaN, sort after all numbers, lexically among themselves.
func Numeric(a, b string) int {
	x, okA := parseNumber(a)
	y, okB := parseNumber(b)
	switch {
	case okA && okB:
		return cmp.Compare(x, y)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Date returns a comparator that parses values with the given time layout.
// Values that do not parse sort after all dates, lexically among themselves.
func Date(layout string) Comparator {
	return func(a, b string) int {
		x, errA := time.Parse(layout, strings.TrimSpace(a))
		y, errB := time.Parse(layout, strings.TrimSpace(b))
		switch {
		case errA == nil && errB == nil:
			return x.Compare(y)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return strings.Compare(a, b)
		}
	}
}

// Collated returns a comparator using the collation rules of the given
// language.
func Collated(tag language.Tag, opts ...collate.Option) Comparator {
	c := collate.New(tag, opts...)
	// collate.Collator keeps scratch buffers and is not safe for concurrent
	// use; a comparator is used by one sort at a time.
	return c.CompareString
}

// Reverse inverts the order of c.
func Reverse(c Comparator) Comparator {
	return func(a, b string) int { return c(b, a) }
}
