package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntitiesCountsAndOrder(t *testing.T) {
	lists := [][]string{
		{"Paris", "London"},
		{"London"},
		{},
		{"Berlin", "London", "Paris"},
	}
	got := RankEntities(lists, 20)
	assert.Equal(t, []RankedEntity{
		{Name: "London", Count: 3},
		{Name: "Paris", Count: 2},
		{Name: "Berlin", Count: 1},
	}, got)
}

func TestRankEntitiesTieBreakFirstSeen(t *testing.T) {
	got := RankEntities([][]string{{"Oslo", "Rome"}, {"Rome", "Oslo"}, {"Lima"}}, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "Oslo", got[0].Name)
	assert.Equal(t, "Rome", got[1].Name)
	assert.Equal(t, "Lima", got[2].Name)
}

func TestRankEntitiesCaseSensitive(t *testing.T) {
	got := RankEntities([][]string{{"paris", "Paris"}}, 5)
	assert.Len(t, got, 2)
}

func TestRankEntitiesTruncates(t *testing.T) {
	var lists [][]string
	for i := 0; i < 30; i++ {
		lists = append(lists, []string{fmt.Sprintf("city-%02d", i)})
	}
	lists = append(lists, []string{"city-29"})

	got := RankEntities(lists, 0)
	require.Len(t, got, DefaultTopN)
	assert.Equal(t, RankedEntity{Name: "city-29", Count: 2}, got[0])
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
		assert.GreaterOrEqual(t, got[i].Count, 1)
	}

	assert.Len(t, RankEntities(lists, 3), 3)
}

func TestRankEntitiesEmpty(t *testing.T) {
	got := RankEntities(nil, 20)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, RankEntities([][]string{{}, nil}, 20))
}
