package mapgen

import "github.com/talgya/hexfield/internal/hexgrid"

// erodibleDelta is how much higher than a neighbor a cell must sit before
// it can shed elevation onto it.
const erodibleDelta = 2

// erodibleSet tracks erosion candidates with O(1) membership and
// swap-removal. Random picks index the slice, so iteration order never
// influences which cells erode beyond the rng sequence itself.
type erodibleSet struct {
	cells []*hexgrid.Cell
	index map[*hexgrid.Cell]int
}

func newErodibleSet() *erodibleSet {
	return &erodibleSet{index: make(map[*hexgrid.Cell]int)}
}

func (s *erodibleSet) add(c *hexgrid.Cell) {
	if _, ok := s.index[c]; ok {
		return
	}
	s.index[c] = len(s.cells)
	s.cells = append(s.cells, c)
}

func (s *erodibleSet) remove(c *hexgrid.Cell) {
	i, ok := s.index[c]
	if !ok {
		return
	}
	last := len(s.cells) - 1
	s.cells[i] = s.cells[last]
	s.index[s.cells[i]] = i
	s.cells = s.cells[:last]
	delete(s.index, c)
}

func (s *erodibleSet) contains(c *hexgrid.Cell) bool {
	_, ok := s.index[c]
	return ok
}

func (s *erodibleSet) len() int {
	return len(s.cells)
}

// erodeLand smooths over-steep slopes. Each step moves one elevation unit
// from a random erodible cell to a random neighbor far enough below it,
// then repairs the erodible set incrementally around both cells — no
// full-grid rescan per step. Stops once only the configured fraction of
// the initially erodible cells remain.
func (g *Generator) erodeLand() {
	set := newErodibleSet()
	for i := 0; i < g.grid.CellCount(); i++ {
		cell := g.grid.Cell(i)
		if isErodible(cell) {
			set.add(cell)
		}
	}

	target := set.len() * (100 - g.cfg.ErosionPercentage) / 100

	for set.len() > target {
		cell := set.cells[g.rng.Intn(set.len())]
		targetCell := g.erosionTarget(cell)

		cell.Elevation--
		targetCell.Elevation++

		if !isErodible(cell) {
			set.remove(cell)
		}
		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := cell.Neighbor(d)
			if neighbor != nil && neighbor.Elevation == cell.Elevation+erodibleDelta && !set.contains(neighbor) {
				set.add(neighbor)
			}
		}

		if isErodible(targetCell) {
			set.add(targetCell)
		}
		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := targetCell.Neighbor(d)
			if neighbor != nil && neighbor != cell &&
				neighbor.Elevation == targetCell.Elevation+1 && !isErodible(neighbor) {
				set.remove(neighbor)
			}
		}
	}
}

// isErodible reports whether some neighbor sits low enough for the cell to
// shed elevation onto it.
func isErodible(c *hexgrid.Cell) bool {
	erodibleElevation := c.Elevation - erodibleDelta
	for d := hexgrid.NE; d <= hexgrid.NW; d++ {
		neighbor := c.Neighbor(d)
		if neighbor != nil && neighbor.Elevation <= erodibleElevation {
			return true
		}
	}
	return false
}

// erosionTarget picks a random neighbor low enough to receive the moved
// elevation unit.
func (g *Generator) erosionTarget(c *hexgrid.Cell) *hexgrid.Cell {
	var candidates []*hexgrid.Cell
	erodibleElevation := c.Elevation - erodibleDelta
	for d := hexgrid.NE; d <= hexgrid.NW; d++ {
		neighbor := c.Neighbor(d)
		if neighbor != nil && neighbor.Elevation <= erodibleElevation {
			candidates = append(candidates, neighbor)
		}
	}
	return candidates[g.rng.Intn(len(candidates))]
}
