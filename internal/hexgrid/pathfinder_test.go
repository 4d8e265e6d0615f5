package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTraveler walks anywhere and never expects occupants to move.
type openTraveler struct{}

func (openTraveler) CanEnter(Terrain) bool { return true }
func (openTraveler) Vacating(any) bool     { return false }

// landTraveler refuses water terrain.
type landTraveler struct{}

func (landTraveler) CanEnter(t Terrain) bool { return TerrainInfoOf(t).Land }
func (landTraveler) Vacating(any) bool       { return false }

func buildGrid(t *testing.T, cx, cz int) *Grid {
	t.Helper()
	g := New(cx, cz)
	g.Build(false)
	return g
}

func assertAdjacent(t *testing.T, a, b *Cell) {
	t.Helper()
	for d := NE; d <= NW; d++ {
		if a.Neighbor(d) == b {
			return
		}
	}
	t.Fatalf("cells %d and %d are not adjacent", a.Index, b.Index)
}

func TestFindPathStraightLineOptimal(t *testing.T) {
	g := buildGrid(t, 4, 4) // 20x20 cells
	p := NewPathfinder(g)

	from := g.CellAt(0, 0)
	to := g.CellAt(10, 10)
	path := p.FindPath(from, to, openTraveler{})

	require.NotNil(t, path)
	assert.Len(t, path, from.Coords.DistanceTo(to.Coords))
	assert.Same(t, to, path[len(path)-1])

	assertAdjacent(t, from, path[0])
	for i := 1; i < len(path); i++ {
		assertAdjacent(t, path[i-1], path[i])
	}
}

func TestFindPathSameCell(t *testing.T) {
	g := buildGrid(t, 2, 2)
	p := NewPathfinder(g)

	c := g.CellAt(3, 3)
	path := p.FindPath(c, c, openTraveler{})
	require.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPathEnclosedTarget(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	to := g.CellAt(10, 10)
	for d := NE; d <= NW; d++ {
		to.Neighbor(d).Occupant = "blocker"
	}

	path := p.FindPath(g.CellAt(0, 0), to, openTraveler{})
	assert.Nil(t, path)
}

func TestFindPathAroundOccupants(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	from := g.CellAt(0, 10)
	to := g.CellAt(10, 10)

	// Wall across the row, one gap at the top edge.
	for z := 0; z < g.CellCountZ()-1; z++ {
		g.CellAt(5, z).Occupant = "wall"
	}

	path := p.FindPath(from, to, openTraveler{})
	require.NotNil(t, path)
	assert.Greater(t, len(path), from.Coords.DistanceTo(to.Coords),
		"detour must be longer than the unobstructed distance")
	for _, c := range path {
		assert.Nil(t, c.Occupant)
	}
}

func TestFindPathOccupancyAdmissionRules(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	from := g.CellAt(10, 5)
	to := g.CellAt(10, 15)
	between := g.CellAt(10, 10)

	// Rows 9-11 are walled except at x=10, so every path must cross the
	// contested cell in the middle of the corridor.
	for z := 9; z <= 11; z++ {
		for x := 0; x < g.CellCountX(); x++ {
			if x != 10 {
				g.CellAt(x, z).Occupant = "wall"
			}
		}
	}
	between.Occupant = "contested"

	// Blocking occupant: no way through.
	assert.Nil(t, p.FindPath(from, to, openTraveler{}))

	// Occupant vacating this step: admitted.
	vacating := travelerFunc{enter: func(Terrain) bool { return true }, vacating: func(o any) bool { return o == "contested" }}
	assert.NotNil(t, p.FindPath(from, to, vacating))

	// Explored but not currently visible: admitted on memory.
	between.IncreaseVisibility()
	between.DecreaseVisibility()
	assert.NotNil(t, p.FindPath(from, to, openTraveler{}))

	// Visible again: the occupant is known to be there, blocked.
	between.IncreaseVisibility()
	assert.Nil(t, p.FindPath(from, to, openTraveler{}))
}

type travelerFunc struct {
	enter    func(Terrain) bool
	vacating func(any) bool
}

func (f travelerFunc) CanEnter(t Terrain) bool { return f.enter(t) }
func (f travelerFunc) Vacating(o any) bool     { return f.vacating(o) }

func TestFindPathRespectsTerrain(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	for i := 0; i < g.CellCount(); i++ {
		g.Cell(i).Terrain = TerrainGrass
	}
	// Water column with no gap.
	for z := 0; z < g.CellCountZ(); z++ {
		g.CellAt(5, z).Terrain = TerrainDeepWater
	}

	assert.Nil(t, p.FindPath(g.CellAt(0, 10), g.CellAt(10, 10), landTraveler{}))
	assert.NotNil(t, p.FindPath(g.CellAt(0, 10), g.CellAt(10, 10), openTraveler{}))
}

func TestFindPathBackToBack(t *testing.T) {
	g := buildGrid(t, 10, 10) // 50x50 cells
	p := NewPathfinder(g)

	from := g.CellAt(0, 0)
	to := g.CellAt(40, 40)

	first := p.FindPath(from, to, openTraveler{})
	require.NotNil(t, first)

	// A large unrelated search in between must not disturb the next one.
	p.CellsInRange(g.CellAt(25, 25), 20)

	second := p.FindPath(from, to, openTraveler{})
	require.NotNil(t, second)
	assert.Equal(t, len(first), len(second))
	assert.Len(t, second, from.Coords.DistanceTo(to.Coords))
}

func TestCellsInRange(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)
	center := g.CellAt(10, 10)

	assert.Len(t, p.CellsInRange(center, 0), 1)
	assert.Len(t, p.CellsInRange(center, 1), 7)
	assert.Len(t, p.CellsInRange(center, 2), 19)

	// Occupancy is ignored.
	center.Neighbor(E).Occupant = "unit"
	assert.Len(t, p.CellsInRange(center, 1), 7)

	// Range is clipped at the map edge.
	corner := g.CellAt(0, 0)
	assert.Less(t, len(p.CellsInRange(corner, 2)), 19)
}

func TestCellsInRangeDistances(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)
	center := g.CellAt(10, 10)

	for _, c := range p.CellsInRange(center, 3) {
		assert.LessOrEqual(t, center.Coords.DistanceTo(c.Coords), 3)
	}
}

func TestClosestInRange(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	from := g.CellAt(2, 5)
	target := g.CellAt(8, 5)
	target.Occupant = "quarry"

	best := p.ClosestInRange(from, target, 2, openTraveler{})
	require.NotNil(t, best)
	assert.Nil(t, best.Occupant)
	assert.LessOrEqual(t, target.Coords.DistanceTo(best.Coords), 2)
	assert.Equal(t, from.Coords.DistanceTo(target.Coords)-2, from.Coords.DistanceTo(best.Coords),
		"best approach cell sits on the near side of the ring")
}

func TestClosestInRangeSkipsOccupied(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	from := g.CellAt(2, 5)
	target := g.CellAt(8, 5)

	// Occupy everything within range except one cell.
	free := g.CellAt(8, 7)
	for _, c := range p.CellsInRange(target, 2) {
		if c != free {
			c.Occupant = "unit"
		}
	}

	best := p.ClosestInRange(from, target, 2, openTraveler{})
	assert.Same(t, free, best)
}

func TestClosestInRangeNone(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)

	target := g.CellAt(8, 5)
	for _, c := range p.CellsInRange(target, 2) {
		c.Occupant = "unit"
	}
	assert.Nil(t, p.ClosestInRange(g.CellAt(2, 5), target, 2, openTraveler{}))
}

func TestOccupantsInRange(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)
	center := g.CellAt(10, 10)

	type unit struct {
		owner int
	}
	center.Neighbor(E).Occupant = &unit{owner: 1}
	center.Neighbor(W).Occupant = &unit{owner: 2}
	g.CellAt(10, 15).Occupant = &unit{owner: 1} // out of range

	friendly := p.OccupantsInRange(center, 2, func(o any) bool {
		return o.(*unit).owner == 1
	})
	require.Len(t, friendly, 1)
	assert.Equal(t, 1, friendly[0].(*unit).owner)

	all := p.OccupantsInRange(center, 2, func(any) bool { return true })
	assert.Len(t, all, 2)
}

func TestCellsInBounds(t *testing.T) {
	g := buildGrid(t, 4, 4)
	p := NewPathfinder(g)
	center := g.CellAt(5, 5)
	east := center.Neighbor(E)

	project := func(pos Position) (float64, float64) { return pos.X, pos.Z }
	bounds := Rect{
		MinX: center.Position.X - 1, MaxX: east.Position.X + 1,
		MinY: center.Position.Z - 1, MaxY: center.Position.Z + 1,
	}

	cells := p.CellsInBounds(center, bounds, project)
	require.Len(t, cells, 2)
	assert.Contains(t, cells, center)
	assert.Contains(t, cells, east)
}

func BenchmarkFindPathRepeated(b *testing.B) {
	g := New(10, 10)
	g.Build(false)
	p := NewPathfinder(g)
	from := g.CellAt(0, 0)
	to := g.CellAt(45, 45)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if p.FindPath(from, to, openTraveler{}) == nil {
			b.Fatal("expected a path")
		}
	}
}

func BenchmarkCellsInRangeRepeated(b *testing.B) {
	// Search cost must track cells visited, not grid size: a small range
	// query on a large grid stays cheap regardless of prior searches.
	g := New(20, 20)
	g.Build(false)
	p := NewPathfinder(g)
	center := g.CellAt(50, 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(p.CellsInRange(center, 3)) != 37 {
			b.Fatal("unexpected range size")
		}
	}
}
