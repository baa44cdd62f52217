package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin_DisambiguatesHeaders(t *testing.T) {
	left := mustTable(t, [][]string{{"City", "State"}, {"Albany", "NY"}})
	right := mustTable(t, [][]string{{"Capital", "State"}, {"Albany", "NY"}})

	got, err := left.Join(right, "State", "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"City", "State", "Capital", "_State"},
		{"Albany", "NY", "Albany", "NY"},
	}, got.ToRows())
	assertInvariants(t, got)

	assert.Equal(t, []string{"Capital", "State"}, right.Headers(), "join must not rename the argument's headers")
	assert.Equal(t, []string{"City", "State"}, left.Headers())
}

func TestJoin_FanOutAndDrop(t *testing.T) {
	capitals := mustTable(t, [][]string{
		{"Capital", "State"},
		{"Albany", "NY"},
		{"Austin", "TX"},
		{"Sacramento", "CA"},
	})
	tbl := cities(t)

	got, err := capitals.Join(tbl, "State", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Capital", "State", "City", "_State", "Population"}, got.Headers())
	assert.Equal(t, []string{"Albany", "Albany", "Austin", "Austin", "Austin"}, got.Column("Capital"))
	assert.Equal(t, []string{"New York", "Buffalo", "Dallas", "Austin", "Houston"}, got.Column("City"))
	assertInvariants(t, got)

	for _, row := range got.Rows() {
		assert.Equal(t, row[1], row[3], "join keys must be equal")
	}
}

func TestJoin_DifferentKeyNames(t *testing.T) {
	capitals := mustTable(t, [][]string{{"Capital", "ST"}, {"Austin", "TX"}, {"Albany", "NY"}})

	got, err := cities(t).Join(capitals, "City", "Capital")
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "State", "Population", "Capital", "ST"}, got.Headers())
	assert.Equal(t, [][]string{
		{"City", "State", "Population", "Capital", "ST"},
		{"Austin", "TX", "961855", "Austin", "TX"},
	}, got.ToRows())
}

func TestJoin_NoMatches(t *testing.T) {
	left := mustTable(t, [][]string{{"A", "K"}, {"1", "x"}})
	right := mustTable(t, [][]string{{"K", "B"}, {"y", "2"}})

	got, err := left.Join(right, "K", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "K", "_K", "B"}, got.Headers())
	assert.Equal(t, 0, got.Count())
	assertInvariants(t, got)
}

func TestJoin_RepeatedCollisions(t *testing.T) {
	left := mustTable(t, [][]string{{"K", "_K"}, {"1", "a"}})
	right := mustTable(t, [][]string{{"K", "__K"}, {"1", "b"}})

	got, err := left.Join(right, "K", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"K", "_K", "___K", "__K"}, got.Headers())
	assert.Equal(t, []string{"1", "a", "1", "b"}, got.Row(0))
	assertInvariants(t, got)
}

func TestJoin_Self(t *testing.T) {
	tbl := people(t)
	got, err := tbl.Join(tbl, "State", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "State", "_Name", "_State"}, got.Headers())
	assert.Equal(t, 5, got.Count())
}

func TestJoin_Errors(t *testing.T) {
	tbl := people(t)

	_, err := tbl.Join(nil, "State", "")
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = tbl.Join(cities(t), "Silly", "")
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = tbl.Join(cities(t), "Name", "Silly")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestUnionIntersect(t *testing.T) {
	tbl := cities(t)
	capitals := mustTable(t, [][]string{
		{"Capital", "State"},
		{"Albany", "NY"},
		{"Austin", "TX"},
		{"Austin", "TX"},
		{"Trenton", "NJ"},
	})

	union, err := tbl.Union(capitals, "City", "Capital")
	require.NoError(t, err)
	assert.Equal(t, []string{"New York", "Buffalo", "Dallas", "Austin", "Houston", "Newark", "Albany", "Trenton"}, union)

	inter, err := tbl.Intersect(capitals, "City", "Capital")
	require.NoError(t, err)
	assert.Equal(t, []string{"Austin"}, inter)

	states, err := tbl.Intersect(capitals, "State", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"NY", "TX", "NJ"}, states)

	none, err := tbl.Intersect(mustTable(t, [][]string{{"State"}, {"CA"}}), "State", "")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestUnionIntersect_Errors(t *testing.T) {
	tbl := cities(t)

	_, err := tbl.Union(nil, "City", "")
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = tbl.Union(people(t), "City", "")
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = tbl.Intersect(people(t), "Silly", "Name")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}
