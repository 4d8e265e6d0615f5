package hexgrid

// Cell is a single node of the hex graph. Cells are created once during
// grid construction and owned exclusively by the grid; terrain, territory,
// occupancy, and visibility mutate throughout a session.
//
// The search bookkeeping fields (Distance, SearchHeuristic, SearchPhase,
// PathFrom, NextWithSamePriority) belong to whichever search is currently
// running and carry no meaning outside it. They are never reset between
// searches; stale values are ignored by comparing SearchPhase against the
// grid's current search phase.
type Cell struct {
	// Index is the cell's stable identity within the grid arena.
	Index int

	Coords   HexCoords
	Position Position

	Terrain   Terrain
	Elevation int

	// TerritoryID is the owning territory's index, or -1 when unclaimed.
	TerritoryID int

	// Occupant is opaque to the engine; only presence matters, plus
	// whatever the caller's traveler predicates make of it.
	Occupant any

	neighbors  [6]*Cell
	visibility int
	explored   bool

	// Search bookkeeping. SearchPriority orders the cell in the bucket
	// queue; NextWithSamePriority chains cells sharing a bucket.
	Distance             int
	SearchHeuristic      int
	SearchPhase          int
	PathFrom             *Cell
	NextWithSamePriority *Cell
}

// SearchPriority is the cell's current queue key.
func (c *Cell) SearchPriority() int {
	return c.Distance + c.SearchHeuristic
}

// Neighbor returns the adjacent cell in the given direction, or nil at the
// map edge.
func (c *Cell) Neighbor(d Direction) *Cell {
	return c.neighbors[d]
}

// setNeighbor records adjacency in both directions, keeping it symmetric.
func (c *Cell) setNeighbor(d Direction, other *Cell) {
	c.neighbors[d] = other
	other.neighbors[d.Opposite()] = c
}

// IsLand reports whether the cell's terrain counts as land.
func (c *Cell) IsLand() bool {
	return TerrainInfoOf(c.Terrain).Land
}

// IsVisible reports whether at least one observer currently sees the cell.
func (c *Cell) IsVisible() bool {
	return c.visibility > 0
}

// IsExplored reports whether the cell has ever been visible.
func (c *Cell) IsExplored() bool {
	return c.explored
}

// IncreaseVisibility adds an observer. The first observer marks the cell
// explored for the rest of the session.
func (c *Cell) IncreaseVisibility() {
	c.visibility++
	c.explored = true
}

// DecreaseVisibility removes an observer. Dropping the counter below zero
// is host misuse and panics.
func (c *Cell) DecreaseVisibility() {
	if c.visibility == 0 {
		panic("hexgrid: visibility counter below zero")
	}
	c.visibility--
}
