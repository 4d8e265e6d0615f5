package hexgrid

// Traveler supplies the capability callbacks a shortest-path query needs.
// Unit semantics live outside the engine; the pathfinder only asks these
// two questions.
type Traveler interface {
	// CanEnter reports whether the traveler can move onto the terrain.
	CanEnter(t Terrain) bool
	// Vacating reports whether the occupant is leaving its cell during
	// the current logical step.
	Vacating(occupant any) bool
}

// Rect is an axis-aligned rectangle in projected (screen) space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Pathfinder runs every search family over one grid. Searches never reset
// per-cell state between runs; membership is inferred from phase stamps,
// so the cost of a search is proportional to the cells it visits, never to
// grid size. Not safe for concurrent use.
type Pathfinder struct {
	grid     *Grid
	frontier *CellQueue
	queue    []*Cell // FIFO reused by the breadth-first variants
}

// NewPathfinder creates a pathfinder over the given built grid.
func NewPathfinder(g *Grid) *Pathfinder {
	g.mustBeBuilt()
	return &Pathfinder{grid: g, frontier: NewCellQueue()}
}

// FindPath returns the shortest path from one cell to another as an
// ordered sequence excluding from and including to, or nil when no path
// exists. Hop cost is uniform; A* with the hex-distance heuristic is
// therefore optimal. A neighbor is admitted when the traveler can enter
// its terrain and one of three occupancy rules holds: the cell is empty,
// the occupant is vacating this step, or the cell was explored but is not
// currently visible (the traveler plans through remembered terrain).
func (p *Pathfinder) FindPath(from, to *Cell, t Traveler) []*Cell {
	if from == nil || to == nil {
		panic("hexgrid: FindPath requires non-nil endpoints")
	}

	phase := p.grid.NextSearchPhase()
	p.frontier.Clear()

	from.SearchPhase = phase
	from.Distance = 0
	from.SearchHeuristic = 0
	p.frontier.Enqueue(from)

	for p.frontier.Count() > 0 {
		current := p.frontier.Dequeue()
		current.SearchPhase++ // finalized

		if current == to {
			return reconstructPath(from, to)
		}

		distance := current.Distance + 1
		for d := NE; d <= NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase > phase {
				continue
			}
			if !admits(neighbor, t) {
				continue
			}
			if neighbor.SearchPhase < phase {
				neighbor.SearchPhase = phase
				neighbor.Distance = distance
				neighbor.PathFrom = current
				neighbor.SearchHeuristic = neighbor.Coords.DistanceTo(to.Coords)
				p.frontier.Enqueue(neighbor)
			} else if distance < neighbor.Distance {
				oldPriority := neighbor.SearchPriority()
				neighbor.Distance = distance
				neighbor.PathFrom = current
				p.frontier.Change(neighbor, oldPriority)
			}
		}
	}
	return nil
}

func admits(c *Cell, t Traveler) bool {
	if !t.CanEnter(c.Terrain) {
		return false
	}
	if c.Occupant == nil {
		return true
	}
	if t.Vacating(c.Occupant) {
		return true
	}
	return c.IsExplored() && !c.IsVisible()
}

func reconstructPath(from, to *Cell) []*Cell {
	n := 0
	for c := to; c != from; c = c.PathFrom {
		n++
	}
	path := make([]*Cell, n)
	for c := to; c != from; c = c.PathFrom {
		n--
		path[n] = c
	}
	return path
}

// CellsInRange returns every cell within the given hop range of from,
// origin included, ignoring occupancy. Used for vision and area queries.
func (p *Pathfinder) CellsInRange(from *Cell, hops int) []*Cell {
	if from == nil {
		panic("hexgrid: CellsInRange requires a non-nil origin")
	}

	phase := p.grid.NextSearchPhase()
	p.queue = p.queue[:0]

	from.SearchPhase = phase
	from.Distance = 0
	p.queue = append(p.queue, from)

	result := []*Cell{from}
	for head := 0; head < len(p.queue); head++ {
		current := p.queue[head]
		current.SearchPhase++ // finalized; distance was fixed at enqueue

		for d := NE; d <= NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase {
				continue
			}
			distance := current.Distance + 1
			if distance > hops {
				continue
			}
			neighbor.SearchPhase = phase
			neighbor.Distance = distance
			p.queue = append(p.queue, neighbor)
			result = append(result, neighbor)
		}
	}
	return result
}

// ClosestInRange finds, among the unoccupied cells the traveler could
// stand on within the given hop range of target, the one nearest to from
// by hex distance. Expansion runs outward from target; ties go to the
// first cell found in scan order. Returns nil when no cell qualifies.
func (p *Pathfinder) ClosestInRange(from, target *Cell, hops int, t Traveler) *Cell {
	if from == nil || target == nil {
		panic("hexgrid: ClosestInRange requires non-nil cells")
	}

	phase := p.grid.NextSearchPhase()
	p.queue = p.queue[:0]

	target.SearchPhase = phase
	target.Distance = 0
	p.queue = append(p.queue, target)

	var candidates []*Cell
	for head := 0; head < len(p.queue); head++ {
		current := p.queue[head]
		current.SearchPhase++

		for d := NE; d <= NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase {
				continue
			}
			distance := current.Distance + 1
			if distance > hops {
				continue
			}
			if !t.CanEnter(neighbor.Terrain) {
				continue
			}
			neighbor.SearchPhase = phase
			neighbor.Distance = distance
			p.queue = append(p.queue, neighbor)
			if neighbor.Occupant == nil {
				candidates = append(candidates, neighbor)
			}
		}
	}

	var best *Cell
	bestDistance := 0
	for _, c := range candidates {
		d := c.Coords.DistanceTo(from.Coords)
		if best == nil || d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	return best
}

// OccupantsInRange returns the occupants within the given hop range of
// from whose cells pass the caller's filter. The expansion itself ignores
// occupancy, like CellsInRange.
func (p *Pathfinder) OccupantsInRange(from *Cell, hops int, keep func(occupant any) bool) []any {
	var found []any
	for _, c := range p.CellsInRange(from, hops) {
		if c.Occupant != nil && keep(c.Occupant) {
			found = append(found, c.Occupant)
		}
	}
	return found
}

// CellsInBounds expands outward from center, admitting neighbors whose
// projected world position falls inside bounds. project maps a world
// position into the caller's screen space. The center cell anchors the
// expansion and is always included. Presentation-layer box selection is
// the only consumer; the expansion is deliberately minimal.
func (p *Pathfinder) CellsInBounds(center *Cell, bounds Rect, project func(Position) (x, y float64)) []*Cell {
	if center == nil {
		panic("hexgrid: CellsInBounds requires a non-nil center")
	}

	phase := p.grid.NextSearchPhase()
	p.queue = p.queue[:0]

	center.SearchPhase = phase
	p.queue = append(p.queue, center)

	result := []*Cell{center}
	for head := 0; head < len(p.queue); head++ {
		current := p.queue[head]
		current.SearchPhase++

		for d := NE; d <= NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase {
				continue
			}
			if x, y := project(neighbor.Position); !bounds.Contains(x, y) {
				continue
			}
			neighbor.SearchPhase = phase
			p.queue = append(p.queue, neighbor)
			result = append(result, neighbor)
		}
	}
	return result
}
