package mapgen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hexfield/internal/hexgrid"
)

// Territory is a contiguous player-ownable partition of the grid, grown
// from a capital cell. Cells and Borders hold arena indices; Borders are
// the member cells adjacent to a different territory.
type Territory struct {
	ID      uuid.UUID
	Name    string
	Capital int
	Cells   []int
	Borders []int
}

// CreateTerritories partitions every cell of the grid into count
// territories. Capitals are distinct random cells; the flood fills then
// advance round-robin, one expansion step per territory per round, so
// territories grow at roughly equal rates and meet at contested borders
// instead of one consuming the map. A cell belongs to whichever frontier
// claims it first.
func (g *Generator) CreateTerritories(count int) []*Territory {
	if g.rng == nil {
		panic("mapgen: CreateTerritories called before Generate")
	}
	if count <= 0 || count > g.grid.CellCount() {
		panic(fmt.Sprintf("mapgen: territory count %d out of range [1, %d]", count, g.grid.CellCount()))
	}

	for i := 0; i < g.grid.CellCount(); i++ {
		g.grid.Cell(i).TerritoryID = -1
	}

	territories := make([]*Territory, count)
	frontiers := make([][]*hexgrid.Cell, count)
	for t := 0; t < count; t++ {
		var capital *hexgrid.Cell
		for {
			capital = g.grid.Cell(g.rng.Intn(g.grid.CellCount()))
			if capital.TerritoryID == -1 {
				break
			}
		}
		capital.TerritoryID = t
		territories[t] = &Territory{
			ID:      uuid.New(),
			Name:    fmt.Sprintf("Territory %d", t+1),
			Capital: capital.Index,
			Cells:   []int{capital.Index},
		}
		frontiers[t] = append(frontiers[t], capital)
	}

	// Round-robin interleaving: each territory pops one cell per round.
	// Cells are claimed at enqueue time, so the shared boundary is decided
	// purely by claim order.
	for live := count; live > 0; {
		live = 0
		for t := 0; t < count; t++ {
			if len(frontiers[t]) == 0 {
				continue
			}
			current := frontiers[t][0]
			frontiers[t] = frontiers[t][1:]

			for d := hexgrid.NE; d <= hexgrid.NW; d++ {
				neighbor := current.Neighbor(d)
				if neighbor == nil || neighbor.TerritoryID != -1 {
					continue
				}
				neighbor.TerritoryID = t
				territories[t].Cells = append(territories[t].Cells, neighbor.Index)
				frontiers[t] = append(frontiers[t], neighbor)
			}
			if len(frontiers[t]) > 0 {
				live++
			}
		}
	}

	g.markBorders(territories)
	return territories
}

// markBorders derives each territory's border set: members adjacent to a
// cell of a different territory.
func (g *Generator) markBorders(territories []*Territory) {
	for _, t := range territories {
		t.Borders = t.Borders[:0]
	}
	for i := 0; i < g.grid.CellCount(); i++ {
		cell := g.grid.Cell(i)
		if cell.TerritoryID == -1 {
			continue
		}
		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := cell.Neighbor(d)
			if neighbor != nil && neighbor.TerritoryID != -1 && neighbor.TerritoryID != cell.TerritoryID {
				territories[cell.TerritoryID].Borders = append(territories[cell.TerritoryID].Borders, cell.Index)
				break
			}
		}
	}
}
