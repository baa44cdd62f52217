package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColumn(t *testing.T) {
	tbl := people(t)

	_, err := tbl.AddColumn("Age", "30", "25", "41")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "State", "Age"}, tbl.Headers())
	assert.Equal(t, []string{"Amy", "NY", "25"}, tbl.Row(1))
	assertInvariants(t, tbl)
}

func TestAddColumn_CopiesValues(t *testing.T) {
	tbl := people(t)
	vals := []string{"1", "2", "3"}
	_, err := tbl.AddColumn("N", vals...)
	require.NoError(t, err)

	vals[0] = "changed"
	assert.Equal(t, "1", tbl.Column("N")[0])
}

func TestAddColumn_Errors(t *testing.T) {
	tbl := people(t)
	before := tbl.Clone()

	_, err := tbl.AddColumn("State", "a", "b", "c")
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = tbl.AddColumn("Age", "30")
	assert.ErrorIs(t, err, ErrColumnLengthMismatch)

	assert.True(t, before.Equal(tbl), "failed calls must not change the table")
}

func TestAddColumn_EmptyTable(t *testing.T) {
	tbl := New()
	_, err := tbl.AddColumn("City", "New York", "Dallas")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())

	_, err = tbl.AddColumn("State", "NY", "TX")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dallas", "TX"}, tbl.Row(1))
	assertInvariants(t, tbl)
}

func TestAddRow_DefinesHeaders(t *testing.T) {
	tbl := New()
	_, err := tbl.AddRow("City", "State")
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "State"}, tbl.Headers())
	assert.Equal(t, 0, tbl.Count())
	assertInvariants(t, tbl)

	_, err = tbl.AddRow("New York", "NY")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Count())
}

func TestAddRow_LengthMismatch(t *testing.T) {
	tbl := people(t)
	_, err := tbl.AddRow("Only")
	assert.ErrorIs(t, err, ErrRowLengthMismatch)
	assert.Equal(t, 3, tbl.Count())
	assertInvariants(t, tbl)
}

func TestAddRows_StopsAtFirstFailure(t *testing.T) {
	tbl := people(t)
	_, err := tbl.AddRows([][]string{
		{"Ann", "CA"},
		{"Bad"},
		{"Bob", "WA"},
	})
	require.ErrorIs(t, err, ErrRowLengthMismatch)
	assert.Equal(t, 4, tbl.Count(), "rows before the failure remain")
	assert.Equal(t, []string{"Ann", "CA"}, tbl.Row(-1))
}

func TestDelColumn(t *testing.T) {
	tbl := people(t)
	_, err := tbl.DelColumn("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"State"}, tbl.Headers())
	assertInvariants(t, tbl)

	_, err = tbl.DelColumn("Name")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestDelRow(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    [][]string
		wantErr bool
	}{
		{
			name:  "last row by negative index",
			index: -1,
			want:  [][]string{{"Name", "State"}, {"John", "NY"}, {"Amy", "NY"}},
		},
		{
			name:  "first row",
			index: 0,
			want:  [][]string{{"Name", "State"}, {"Amy", "NY"}, {"Lee", "TX"}},
		},
		{
			name:    "past the end",
			index:   3,
			wantErr: true,
		},
		{
			name:    "before the start",
			index:   -4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := people(t)
			_, err := tbl.DelRow(tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRowIndexOutOfBounds)
				assert.Equal(t, 3, tbl.Count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.ToRows())
			assertInvariants(t, tbl)
		})
	}
}

func TestDelRow_EmptyTable(t *testing.T) {
	for _, idx := range []int{0, -1, 1} {
		_, err := New().DelRow(idx)
		assert.ErrorIs(t, err, ErrRowIndexOutOfBounds)

		headersOnly := mustTable(t, [][]string{{"A"}})
		_, err = headersOnly.DelRow(idx)
		assert.ErrorIs(t, err, ErrRowIndexOutOfBounds)
	}
}

func TestRenameHeader(t *testing.T) {
	tbl := people(t)
	_, err := tbl.RenameHeader("State", "ST")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "ST"}, tbl.Headers())
	assert.Equal(t, []string{"NY", "NY", "TX"}, tbl.Column("ST"))
	assert.Empty(t, tbl.Column("State"))
	assertInvariants(t, tbl)

	_, err = tbl.RenameHeader("State", "X")
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = tbl.RenameHeader("ST", "Name")
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = tbl.RenameHeader("ST", "ST")
	assert.NoError(t, err)
}

func TestAppend(t *testing.T) {
	tbl := people(t)
	more := mustTable(t, [][]string{{"Name", "State"}, {"Kim", "CA"}})

	_, err := tbl.Append(more)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Count())
	assert.Equal(t, []string{"Kim", "CA"}, tbl.Row(-1))
	assertInvariants(t, tbl)
}

func TestAppend_EmptySides(t *testing.T) {
	src := people(t)

	empty := New()
	_, err := empty.Append(src)
	require.NoError(t, err)
	assert.True(t, empty.Equal(src))

	_, err = empty.AddRow("Zed", "WA")
	require.NoError(t, err)
	assert.Equal(t, 3, src.Count(), "appended-into table must not share storage")

	tbl := people(t)
	_, err = tbl.Append(New())
	require.NoError(t, err)
	assert.True(t, tbl.Equal(people(t)))
}

func TestAppend_Errors(t *testing.T) {
	tbl := people(t)

	_, err := tbl.Append(mustTable(t, [][]string{{"State", "Name"}, {"CA", "Kim"}}))
	assert.ErrorIs(t, err, ErrHeaderMismatch)

	_, err = tbl.Append(nil)
	assert.ErrorIs(t, err, ErrInvalidTable)

	assert.Equal(t, 3, tbl.Count())
}

func TestAppend_Self(t *testing.T) {
	tbl := people(t)
	_, err := tbl.Append(tbl)
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.Count())
	assertInvariants(t, tbl)
}
