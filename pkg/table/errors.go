package table

import "errors"

// Error kinds returned by Table operations. Returned errors wrap one of these
// with context, so callers should test with errors.Is.
var (
	// ErrDuplicateColumn is returned when adding a column whose name exists.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrInvalidColumn is returned when a referenced column does not exist.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrRowLengthMismatch is returned when a row's field count differs from
	// the header count.
	ErrRowLengthMismatch = errors.New("row length does not match headers")

	// ErrColumnLengthMismatch is returned when a new column's length differs
	// from the row count.
	ErrColumnLengthMismatch = errors.New("column length does not match row count")

	// ErrRowIndexOutOfBounds is returned when addressing a row that does not exist.
	ErrRowIndexOutOfBounds = errors.New("row index out of bounds")

	// ErrHeaderMismatch is returned when appending tables with different headers.
	ErrHeaderMismatch = errors.New("headers do not match")

	// ErrInvalidTable is returned when a relational operation gets no table.
	ErrInvalidTable = errors.New("invalid table")

	// ErrInvalidMatchSpec is returned when a substitution is incomplete.
	ErrInvalidMatchSpec = errors.New("invalid match specification")

	// ErrInvalidCondition is returned when a condition cannot be parsed.
	ErrInvalidCondition = errors.New("invalid condition")
)
