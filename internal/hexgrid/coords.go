// Package hexgrid provides the hex cell graph, coordinate math, and the
// search machinery (bucket priority queue plus phase-stamped pathfinding)
// shared by every query family.
package hexgrid

import (
	"fmt"
	"math"
)

// Layout metrics. Cells are pointy-topped; rows are sheared so odd rows sit
// half a cell to the right of even rows.
const (
	OuterRadius = 10.0
	InnerRadius = OuterRadius * 0.866025403784438646763723170752936
)

// HexCoords represents a position on the hex grid using cube coordinates.
// The invariant X + Y + Z == 0 always holds; Y is derived.
type HexCoords struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Y returns the implicit third cube coordinate.
func (h HexCoords) Y() int {
	return -h.X - h.Z
}

// CoordsFromOffset converts offset (column, row) grid coordinates to cube
// coordinates by undoing the row shear applied during layout.
func CoordsFromOffset(x, z int) HexCoords {
	return HexCoords{X: x - z/2, Z: z}
}

// OffsetX returns the offset column of the coordinate.
func (h HexCoords) OffsetX() int {
	return h.X + h.Z/2
}

// OffsetZ returns the offset row of the coordinate.
func (h HexCoords) OffsetZ() int {
	return h.Z
}

// DistanceTo returns the hex distance between two coordinates.
func (h HexCoords) DistanceTo(o HexCoords) int {
	dx := abs(h.X - o.X)
	dy := abs(h.Y() - o.Y())
	dz := abs(h.Z - o.Z)
	return (dx + dy + dz) / 2
}

func (h HexCoords) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.X, h.Y(), h.Z)
}

// Position is a point in world space. Y is reserved for vertical placement
// by external renderers; the engine itself only uses X and Z.
type Position struct {
	X, Y, Z float64
}

// CellPosition returns the world position of the cell at the given offset
// coordinates (the forward projection inverted by CoordsFromPosition).
func CellPosition(offsetX, offsetZ int) Position {
	return Position{
		X: (float64(offsetX) + float64(offsetZ)*0.5 - float64(offsetZ/2)) * (InnerRadius * 2),
		Z: float64(offsetZ) * (OuterRadius * 1.5),
	}
}

// CoordsFromPosition converts a world position to the cube coordinates of
// the containing cell. Each cube component is rounded independently; the
// component with the largest rounding error is then recomputed from the
// other two so the zero-sum invariant holds exactly.
func CoordsFromPosition(p Position) HexCoords {
	x := p.X / (InnerRadius * 2)
	y := -x
	offset := p.Z / (OuterRadius * 3)
	x -= offset
	y -= offset

	ix := int(math.Round(x))
	iy := int(math.Round(y))
	iz := int(math.Round(-x - y))

	if ix+iy+iz != 0 {
		dx := math.Abs(x - float64(ix))
		dy := math.Abs(y - float64(iy))
		dz := math.Abs(-x - y - float64(iz))

		if dx > dy && dx > dz {
			ix = -iy - iz
		} else if dz > dy {
			iz = -ix - iy
		}
	}

	return HexCoords{X: ix, Z: iz}
}

// Direction identifies one of the six cell adjacencies.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	return [...]string{"NE", "E", "SE", "SW", "W", "NW"}[d]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
