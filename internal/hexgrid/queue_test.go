package hexgrid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueCell(priority int) *Cell {
	return &Cell{Distance: priority}
}

func TestQueueDequeueOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := NewCellQueue()

	const n = 500
	for i := 0; i < n; i++ {
		q.Enqueue(queueCell(rng.Intn(50)))
	}
	require.Equal(t, n, q.Count())

	previous := -1
	for i := 0; i < n; i++ {
		c := q.Dequeue()
		require.NotNil(t, c)
		assert.GreaterOrEqual(t, c.SearchPriority(), previous)
		previous = c.SearchPriority()
	}
	assert.Nil(t, q.Dequeue())
	assert.Equal(t, 0, q.Count())
}

func TestQueueDequeueEmpty(t *testing.T) {
	q := NewCellQueue()
	assert.Nil(t, q.Dequeue())
}

func TestQueueChangeRelocates(t *testing.T) {
	q := NewCellQueue()
	a := queueCell(3)
	b := queueCell(5)
	q.Enqueue(a)
	q.Enqueue(b)

	// Lower b below a and relocate it.
	old := b.SearchPriority()
	b.Distance = 1
	q.Change(b, old)

	assert.Equal(t, 2, q.Count())
	assert.Same(t, b, q.Dequeue())
	assert.Same(t, a, q.Dequeue())
}

func TestQueueChangeMidBucket(t *testing.T) {
	q := NewCellQueue()
	// Three cells sharing a bucket; relocate the one spliced mid-chain.
	a := queueCell(4)
	b := queueCell(4)
	c := queueCell(4)
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	b.Distance = 0
	q.Change(b, 4)

	assert.Same(t, b, q.Dequeue())
	first := q.Dequeue()
	second := q.Dequeue()
	assert.ElementsMatch(t, []*Cell{a, c}, []*Cell{first, second})
	assert.Nil(t, q.Dequeue())
}

func TestQueueClear(t *testing.T) {
	q := NewCellQueue()
	q.Enqueue(queueCell(2))
	q.Enqueue(queueCell(9))
	q.Clear()
	assert.Equal(t, 0, q.Count())
	assert.Nil(t, q.Dequeue())

	// Reusable after clearing.
	q.Enqueue(queueCell(1))
	assert.Equal(t, 1, q.Count())
	assert.NotNil(t, q.Dequeue())
}
