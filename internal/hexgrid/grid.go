package hexgrid

import "fmt"

// Chunk partitioning is a batching convenience for external renderers;
// it has no effect on search or generation.
const (
	ChunkSizeX = 5
	ChunkSizeZ = 5
)

// Grid owns the full cell arena, laid out row-major over offset
// coordinates. Construct with New, then call Build before any lookup.
type Grid struct {
	chunkCountX, chunkCountZ int
	cellCountX, cellCountZ   int

	cells  []Cell
	chunks []*Chunk

	built       bool
	searchPhase int
}

// Chunk groups a fixed block of cells for rendering batching.
type Chunk struct {
	Cells []*Cell
}

// New creates an unbuilt grid sized in render chunks.
func New(chunkCountX, chunkCountZ int) *Grid {
	if chunkCountX <= 0 || chunkCountZ <= 0 {
		panic(fmt.Sprintf("hexgrid: invalid chunk counts %d x %d", chunkCountX, chunkCountZ))
	}
	return &Grid{
		chunkCountX: chunkCountX,
		chunkCountZ: chunkCountZ,
		cellCountX:  chunkCountX * ChunkSizeX,
		cellCountZ:  chunkCountZ * ChunkSizeZ,
	}
}

// Build allocates the cell arena and wires adjacency. withChunks also
// builds the render-chunk partition. Build may be called once.
func (g *Grid) Build(withChunks bool) {
	if g.built {
		panic("hexgrid: grid already built")
	}
	g.cells = make([]Cell, g.cellCountX*g.cellCountZ)

	i := 0
	for z := 0; z < g.cellCountZ; z++ {
		for x := 0; x < g.cellCountX; x++ {
			g.createCell(x, z, i)
			i++
		}
	}

	if withChunks {
		g.createChunks()
	}
	g.built = true
}

func (g *Grid) createCell(x, z, i int) {
	c := &g.cells[i]
	c.Index = i
	c.Coords = CoordsFromOffset(x, z)
	c.Position = CellPosition(x, z)
	c.TerritoryID = -1

	// Wire neighbors back toward cells created earlier; setNeighbor
	// records both directions.
	if x > 0 {
		c.setNeighbor(W, &g.cells[i-1])
	}
	if z > 0 {
		if z&1 == 0 {
			c.setNeighbor(SE, &g.cells[i-g.cellCountX])
			if x > 0 {
				c.setNeighbor(SW, &g.cells[i-g.cellCountX-1])
			}
		} else {
			c.setNeighbor(SW, &g.cells[i-g.cellCountX])
			if x < g.cellCountX-1 {
				c.setNeighbor(SE, &g.cells[i-g.cellCountX+1])
			}
		}
	}
}

func (g *Grid) createChunks() {
	g.chunks = make([]*Chunk, 0, g.chunkCountX*g.chunkCountZ)
	for cz := 0; cz < g.chunkCountZ; cz++ {
		for cx := 0; cx < g.chunkCountX; cx++ {
			chunk := &Chunk{Cells: make([]*Cell, 0, ChunkSizeX*ChunkSizeZ)}
			for z := cz * ChunkSizeZ; z < (cz+1)*ChunkSizeZ; z++ {
				for x := cx * ChunkSizeX; x < (cx+1)*ChunkSizeX; x++ {
					chunk.Cells = append(chunk.Cells, &g.cells[x+z*g.cellCountX])
				}
			}
			g.chunks = append(g.chunks, chunk)
		}
	}
}

// CellCountX returns the number of cell columns.
func (g *Grid) CellCountX() int { return g.cellCountX }

// CellCountZ returns the number of cell rows.
func (g *Grid) CellCountZ() int { return g.cellCountZ }

// CellCount returns the total number of cells.
func (g *Grid) CellCount() int { return g.cellCountX * g.cellCountZ }

// Chunks returns the render-chunk partition, or nil when the grid was
// built without chunks.
func (g *Grid) Chunks() []*Chunk {
	g.mustBeBuilt()
	return g.chunks
}

// Cell returns the cell with the given arena index. Out-of-range indices
// panic; lookups never clamp.
func (g *Grid) Cell(index int) *Cell {
	g.mustBeBuilt()
	if index < 0 || index >= len(g.cells) {
		panic(fmt.Sprintf("hexgrid: cell index %d out of range [0, %d)", index, len(g.cells)))
	}
	return &g.cells[index]
}

// CellAt returns the cell at the given offset coordinates. Out-of-range
// coordinates panic.
func (g *Grid) CellAt(x, z int) *Cell {
	g.mustBeBuilt()
	if x < 0 || x >= g.cellCountX || z < 0 || z >= g.cellCountZ {
		panic(fmt.Sprintf("hexgrid: cell (%d, %d) out of range %d x %d", x, z, g.cellCountX, g.cellCountZ))
	}
	return &g.cells[x+z*g.cellCountX]
}

// CellAtPosition returns the cell containing the given world position, or
// nil when the position falls outside the grid.
func (g *Grid) CellAtPosition(p Position) *Cell {
	g.mustBeBuilt()
	coords := CoordsFromPosition(p)
	x := coords.OffsetX()
	z := coords.OffsetZ()
	if x < 0 || x >= g.cellCountX || z < 0 || z >= g.cellCountZ {
		return nil
	}
	return &g.cells[x+z*g.cellCountX]
}

// NextSearchPhase advances the grid's shared search phase counter and
// returns the new phase. Every search family (pathfinding, range queries,
// generation flood fills) begins by calling this; the counter advances by
// two so each search owns a frontier stamp and a finalized stamp, and
// stamps left by earlier searches are never mistaken for current ones.
func (g *Grid) NextSearchPhase() int {
	g.mustBeBuilt()
	g.searchPhase += 2
	return g.searchPhase
}

func (g *Grid) mustBeBuilt() {
	if !g.built {
		panic("hexgrid: grid not built")
	}
}
