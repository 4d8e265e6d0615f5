package hexgrid

import "math"

// CellQueue is a bucket-indexed priority queue over cells, keyed by
// Cell.SearchPriority. Each bucket holds a singly linked chain through
// NextWithSamePriority; ties dequeue LIFO, which callers must not rely on.
// Priorities must be small non-negative integers — hex distances plus a
// bounded heuristic satisfy this. Negative priorities panic on the bucket
// index.
type CellQueue struct {
	buckets []*Cell
	count   int
	minimum int
}

// NewCellQueue returns an empty queue.
func NewCellQueue() *CellQueue {
	return &CellQueue{minimum: math.MaxInt}
}

// Count returns the number of queued cells.
func (q *CellQueue) Count() int {
	return q.count
}

// Enqueue inserts a cell at its current search priority.
func (q *CellQueue) Enqueue(c *Cell) {
	q.count++
	priority := c.SearchPriority()
	if priority < q.minimum {
		q.minimum = priority
	}
	for priority >= len(q.buckets) {
		q.buckets = append(q.buckets, nil)
	}
	c.NextWithSamePriority = q.buckets[priority]
	q.buckets[priority] = c
}

// Dequeue removes and returns a minimum-priority cell, or nil when empty.
// The minimum watermark only moves forward, so repeated dequeues amortize
// the bucket scan.
func (q *CellQueue) Dequeue() *Cell {
	if q.count == 0 {
		return nil
	}
	q.count--
	for ; q.minimum < len(q.buckets); q.minimum++ {
		if c := q.buckets[q.minimum]; c != nil {
			q.buckets[q.minimum] = c.NextWithSamePriority
			return c
		}
	}
	return nil
}

// Change relocates a cell whose priority was just lowered. oldPriority is
// the bucket the cell currently sits in; the cell is spliced out of that
// chain and re-enqueued at its new priority. Correct only while priorities
// are relaxed downward, as in A* and Dijkstra improvement paths.
func (q *CellQueue) Change(c *Cell, oldPriority int) {
	current := q.buckets[oldPriority]
	if current == c {
		q.buckets[oldPriority] = c.NextWithSamePriority
	} else {
		for current.NextWithSamePriority != c {
			current = current.NextWithSamePriority
		}
		current.NextWithSamePriority = c.NextWithSamePriority
	}
	q.count--
	q.Enqueue(c)
}

// Clear resets the queue to empty, keeping bucket capacity.
func (q *CellQueue) Clear() {
	q.buckets = q.buckets[:0]
	q.count = 0
	q.minimum = math.MaxInt
}
