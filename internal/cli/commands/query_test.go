package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablestakes/internal/cli/testutil"
	"github.com/leapstack-labs/tablestakes/pkg/table"
)

func TestSelectCommand(t *testing.T) {
	path := testutil.Capitals(t)

	out, _, err := execute(t, tsvConfig(), NewSelectCommand(), path, "State", "Capital")
	require.NoError(t, err)
	assert.Equal(t, "State\tCapital\nNY\tAlbany\nTX\tAustin\nNJ\tTrenton\n", out)

	_, _, err = execute(t, tsvConfig(), NewSelectCommand(), path, "Country")
	assert.ErrorIs(t, err, table.ErrInvalidColumn)
}

func TestWhereCommand(t *testing.T) {
	path := testutil.Cities(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr error
	}{
		{name: "equal", args: []string{"State", "== NJ"}, want: []string{"Newark"}},
		{name: "split condition", args: []string{"State", "==", "NJ"}, want: []string{"Newark"}},
		{name: "regexp", args: []string{"City", "=~ /^New/"}, want: []string{"New York", "Newark"}},
		{name: "numeric", args: []string{"Population", "num > 1000000"}, want: []string{"New York", "Dallas", "Houston"}},
		{name: "no condition", args: []string{"State"}, want: []string{"New York", "Buffalo", "Dallas", "Austin", "Houston", "Newark"}},
		{name: "no match", args: []string{"State", "== CA"}, want: nil},
		{name: "bad condition", args: []string{"State", "~~ NY"}, wantErr: table.ErrInvalidCondition},
		{name: "unknown column", args: []string{"Country", "== US"}, wantErr: table.ErrInvalidColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir() + "/out.tsv"
			args := append([]string{path}, tt.args...)
			_, _, err := execute(t, tsvConfig(), NewWhereCommand(), append(args, "--save", dest)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := table.ReadFile(dest)
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, got.IsEmpty())
				return
			}
			assert.Equal(t, tt.want, got.Column("City"))
		})
	}
}

func TestSortCommand(t *testing.T) {
	cities := testutil.Cities(t)
	capitals := testutil.Capitals(t)

	tests := []struct {
		name    string
		args    []string
		column  string
		want    []string
		wantErr bool
	}{
		{
			name:   "numeric descending",
			args:   []string{cities, "--column", "Population", "--numeric", "--reverse"},
			column: "City",
			want:   []string{"New York", "Houston", "Dallas", "Austin", "Newark", "Buffalo"},
		},
		{
			name:   "lexical by default on the first column",
			args:   []string{cities},
			column: "City",
			want:   []string{"Austin", "Buffalo", "Dallas", "Houston", "New York", "Newark"},
		},
		{
			name:   "by index",
			args:   []string{capitals, "-i", "1"},
			column: "Capital",
			want:   []string{"Trenton", "Albany", "Austin"},
		},
		{
			name:    "column and index together",
			args:    []string{capitals, "-c", "State", "-i", "1"},
			wantErr: true,
		},
		{
			name:    "bad collation tag",
			args:    []string{capitals, "--collate", "not a tag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir() + "/sorted.tsv"
			_, _, err := execute(t, tsvConfig(), NewSortCommand(), append(tt.args, "--save", dest)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := table.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Column(tt.column))
		})
	}
}

func TestSubCommand(t *testing.T) {
	path := testutil.Capitals(t)

	tests := []struct {
		name    string
		args    []string
		column  string
		want    []string
		wantErr bool
	}{
		{
			name:   "literal",
			args:   []string{"State", "NY", "New York"},
			column: "State",
			want:   []string{"New York", "TX", "NJ"},
		},
		{
			name:   "regexp",
			args:   []string{"Capital", "--regexp", `^(A)(\w+)`, "$2$1"},
			column: "Capital",
			want:   []string{"lbanyA", "ustinA", "Trenton"},
		},
		{
			name:   "mapping",
			args:   []string{"State", "^[A-Z]+$", "--map", "NY=New York,TX=Texas"},
			column: "State",
			want:   []string{"New York", "Texas", "NJ"},
		},
		{
			name:   "transform",
			args:   []string{"Capital", "--transform", "upper"},
			column: "Capital",
			want:   []string{"ALBANY", "AUSTIN", "TRENTON"},
		},
		{name: "unknown transform", args: []string{"Capital", "-t", "reverse"}, wantErr: true},
		{name: "transform with match", args: []string{"Capital", "-t", "upper", "a", "b"}, wantErr: true},
		{name: "missing replacement", args: []string{"Capital", "a"}, wantErr: true},
		{name: "bad pattern", args: []string{"Capital", "-e", "(", "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir() + "/sub.tsv"
			args := append([]string{path}, tt.args...)
			_, _, err := execute(t, tsvConfig(), NewSubCommand(), append(args, "--save", dest)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := table.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Column(tt.column))
		})
	}
}
