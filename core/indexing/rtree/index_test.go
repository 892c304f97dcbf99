package rtree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddAndIntersects(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	require.NoError(t, idx.Add(NewRect(0, 0, 5, 5), "a"))
	require.NoError(t, idx.Add(NewRect(10, 10, 15, 15), "b"))

	items, err := idx.Intersects(NewRect(0, 0, 6, 6))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
}

func TestIndex_AddDuplicatePayloadRejected(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	require.NoError(t, idx.Add(NewRect(0, 0, 1, 1), "a"))
	err = idx.Add(NewRect(5, 5, 6, 6), "a")
	assert.ErrorIs(t, err, ErrDuplicatePayload)
}

func TestIndex_DeleteUnknownPayload(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	err = idx.Delete(NewRect(0, 0, 1, 1), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndex_DeleteWrongRectangle(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	require.NoError(t, idx.Add(NewRect(0, 0, 1, 1), "a"))
	err = idx.Delete(NewRect(5, 5, 6, 6), "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndex_CountAndBounds(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, ok, err := idx.Bounds()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, idx.Add(NewRect(0, 0, 1, 1), "a"))
	require.NoError(t, idx.Add(NewRect(9, 9, 10, 10), "b"))

	n, err = idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bounds, ok, err := idx.Bounds()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, NewRect(0, 0, 10, 10), bounds)
}

func TestIndex_Contains(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	require.NoError(t, idx.Add(NewRect(2, 2, 4, 4), "inner"))
	require.NoError(t, idx.Add(NewRect(0, 0, 20, 20), "outer"))

	items, err := idx.Contains(NewRect(0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, items)
}

func TestIndex_Nearest(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	require.NoError(t, idx.Add(NewRect(0, 0, 1, 1), "close"))
	require.NoError(t, idx.Add(NewRect(50, 50, 51, 51), "far"))

	items, err := idx.Nearest(Point{0, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"close"}, items)
}

func TestIndex_DeleteThenReAdd(t *testing.T) {
	idx, err := NewIndex[string]()
	require.NoError(t, err)

	rect := NewRect(0, 0, 1, 1)
	require.NoError(t, idx.Add(rect, "a"))
	require.NoError(t, idx.Delete(rect, "a"))
	require.NoError(t, idx.Add(rect, "a"), "re-adding a deleted payload should succeed")
}

func TestNewIndex_AcceptsMinimalFanout(t *testing.T) {
	_, err := NewIndex[string](WithFanout[string](2, 1))
	assert.NoError(t, err)
}

func TestNewIndex_RejectsInvalidFanout(t *testing.T) {
	_, err := NewIndex[string](WithFanout[string](1, 1))
	assert.ErrorIs(t, err, ErrInvalidArgument, "maxEntries below 2 is invalid")

	_, err = NewIndex[string](WithFanout[string](4, 0))
	assert.ErrorIs(t, err, ErrInvalidArgument, "minEntries below 1 is invalid")

	_, err = NewIndex[string](WithFanout[string](4, 3))
	assert.ErrorIs(t, err, ErrInvalidArgument, "minEntries above maxEntries/2 is invalid")
}

func TestWithLockTimeout_AffectsAcquisitionFailure(t *testing.T) {
	idx, err := NewIndex[string](WithLockTimeout[string](10 * time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, idx.lock.lock(time.Second))
	defer idx.lock.unlock()

	err = idx.Add(NewRect(0, 0, 1, 1), "a")
	assert.ErrorIs(t, err, ErrLockTimeout)
}
