// Package table provides an in-memory, column-oriented table of text values.
//
// A Table holds an ordered list of unique headers and one value slice per
// header. All columns always have the same length, which is the row count.
// Rows are never stored; they are materialized on demand as fresh copies, so
// changing a returned row never changes the Table.
//
// Operations come in two families:
//   - Pure operations (Select, Where, Tally, Join, Sort, Sub, ...) build and
//     return a new Table that shares no backing storage with the receiver.
//   - Mutating operations (AddColumn, AddRow, DelRow, SortInPlace,
//     SubInPlace, ...) change the receiver and return it for chaining.
//
// All values are text. Numeric or date ordering is opt-in through explicit
// comparators (Numeric, Date) and predicates (NumericCompare), never implied.
//
// A Table performs no internal locking. Concurrent pure operations on a Table
// that is not being mutated are safe; concurrent mutation needs an external
// lock.
//
// Tables are read from and written to tab-delimited text: the first line holds
// the headers, each following line one row.
package table
