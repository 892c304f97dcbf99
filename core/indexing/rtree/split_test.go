package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNode_ProducesTwoNonEmptyGroupsRespectingMinimum(t *testing.T) {
	tr := newTree(4, 2, nil)
	n, err := tr.allocNode(1)
	require.NoError(t, err)
	n.addEntry(NewRect(0, 0, 1, 1), 1)
	n.addEntry(NewRect(10, 10, 11, 11), 2)
	n.addEntry(NewRect(20, 20, 21, 21), 3)
	n.addEntry(NewRect(30, 30, 31, 31), 4)

	sibling, err := tr.splitNode(n, NewRect(40, 40, 41, 41), 5)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, n.count(), tr.minEntries)
	assert.GreaterOrEqual(t, sibling.count(), tr.minEntries)
	assert.Equal(t, 5, n.count()+sibling.count())
	assert.NotEqual(t, n.id, sibling.id)
}

func TestSplitNode_SeedsAreTheMostDistantPair(t *testing.T) {
	candidates := []entry{
		{rect: NewRect(0, 0, 0, 0), id: 1},
		{rect: NewRect(1, 1, 1, 1), id: 2},
		{rect: NewRect(100, 100, 100, 100), id: 3},
	}
	a, b := pickSeeds(candidates)
	seeds := map[int64]bool{candidates[a].id: true, candidates[b].id: true}
	assert.True(t, seeds[1])
	assert.True(t, seeds[3], "the most widely separated pair should include the far outlier")
}

func TestChooseGroup_PrefersLessEnlargement(t *testing.T) {
	assert.True(t, chooseGroup(1, 5, 0, 0, 0, 0))
	assert.False(t, chooseGroup(5, 1, 0, 0, 0, 0))
}

func TestChooseGroup_TiesBreakOnSmallerArea(t *testing.T) {
	assert.True(t, chooseGroup(2, 2, 10, 20, 0, 0))
	assert.False(t, chooseGroup(2, 2, 20, 10, 0, 0))
}

func TestChooseGroup_TiesBreakOnFewerEntries(t *testing.T) {
	assert.True(t, chooseGroup(2, 2, 10, 10, 1, 3))
	assert.False(t, chooseGroup(2, 2, 10, 10, 3, 1))
}
