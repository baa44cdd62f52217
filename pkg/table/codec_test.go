package table

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablestakes/internal/testutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "simple",
			input: "Name\tState\nJohn\tNY\nAmy\tNY\n",
			want:  [][]string{{"Name", "State"}, {"John", "NY"}, {"Amy", "NY"}},
		},
		{
			name:  "no trailing newline",
			input: "Name\tState\nJohn\tNY",
			want:  [][]string{{"Name", "State"}, {"John", "NY"}},
		},
		{
			name:  "crlf",
			input: "Name\tState\r\nJohn\tNY\r\n",
			want:  [][]string{{"Name", "State"}, {"John", "NY"}},
		},
		{
			name:  "short rows padded",
			input: "A\tB\tC\n1\n1\t2\n",
			want:  [][]string{{"A", "B", "C"}, {"1", "", ""}, {"1", "2", ""}},
		},
		{
			name:  "empty values kept",
			input: "A\tB\n\t\n",
			want:  [][]string{{"A", "B"}, {"", ""}},
		},
		{
			name:  "headers only",
			input: "A\tB\n",
			want:  [][]string{{"A", "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ToRows())
			assertInvariants(t, got)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, "", got.String())
}

func TestParse_SkipsLongRows(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	var skipped []MalformedRow

	got, err := Parse(
		strings.NewReader("A\tB\n1\t2\n1\t2\t3\n4\t5\n"),
		WithLogger(logger),
		OnMalformed(func(m MalformedRow) { skipped = append(skipped, m) }),
	)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}, {"4", "5"}}, got.ToRows())

	require.Len(t, skipped, 1)
	assert.Equal(t, MalformedRow{Line: 3, Fields: []string{"1", "2", "3"}, Want: 2}, skipped[0])
	assert.Contains(t, logs.String(), "skipping malformed row")
	assert.Contains(t, logs.String(), "line=3")
}

func TestParse_TrailingTabIsAField(t *testing.T) {
	var skipped []MalformedRow
	got, err := Parse(strings.NewReader("A\tB\nx\ty\t\nx\t\n"),
		OnMalformed(func(m MalformedRow) { skipped = append(skipped, m) }))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"A", "B"}, {"x", ""}}, got.ToRows())
	require.Len(t, skipped, 1)
	assert.Equal(t, MalformedRow{Line: 2, Fields: []string{"x", "y", ""}, Want: 2}, skipped[0])
}

func TestParse_DuplicateHeaders(t *testing.T) {
	_, err := Parse(strings.NewReader("A\tA\n1\t2\n"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestString(t *testing.T) {
	assert.Equal(t, "Name\tState\nJohn\tNY\nAmy\tNY\nLee\tTX\n", people(t).String())
	assert.Equal(t, "A\tB\n", mustTable(t, [][]string{{"A", "B"}}).String())
	assert.Equal(t, "", New().String())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tbl  func(t *testing.T) *Table
	}{
		{"cities", cities},
		{"empty table", func(*testing.T) *Table { return New() }},
		{"headers only", func(t *testing.T) *Table {
			return mustTable(t, [][]string{{"A", "B"}})
		}},
		{"empty cells", func(t *testing.T) *Table {
			return mustTable(t, [][]string{{"A", "B", "C"}, {"", "x", ""}, {"", "", ""}})
		}},
		{"trailing empty field", func(t *testing.T) *Table {
			return mustTable(t, [][]string{{"A", "B"}, {"x", ""}, {"y", "z"}})
		}},
		{"single empty column value", func(t *testing.T) *Table {
			return mustTable(t, [][]string{{"A"}, {""}})
		}},
		{"single column of empty values", func(t *testing.T) *Table {
			return mustTable(t, [][]string{{"A"}, {""}, {"b"}, {""}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := tt.tbl(t)
			got, err := Parse(strings.NewReader(tbl.String()))
			require.NoError(t, err)
			assert.True(t, tbl.Equal(got), "got %v, want %v", got.ToRows(), tbl.ToRows())
			assert.Equal(t, tbl.Count(), got.Count())
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	path := testutil.WriteTSV(t, "people.tsv",
		[]string{"Name", "State"},
		[]string{"John", "NY"},
		[]string{"Amy", "NY"},
		[]string{"Lee", "TX"},
	)

	logger, logs := testutil.NewCaptureLogger()
	tbl, err := ReadFile(path, WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, tbl.Equal(people(t)))
	assert.Contains(t, logs.String(), "loaded table")

	_, err = tbl.DelRow(0)
	require.NoError(t, err)
	require.NoError(t, tbl.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\tState\nAmy\tNY\nLee\tTX\n", string(data))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrInvalidTable)
}

func TestWriteFile_BadPath(t *testing.T) {
	err := people(t).WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.tsv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
