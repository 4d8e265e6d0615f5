package mapgen

import (
	"log/slog"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexfield/internal/hexgrid"
)

// assignBiomes samples a second noise field per cell and picks a terrain
// type from ordered thresholds. Land and underwater cells use separate
// ladders; the underwater ladder is additionally gated by elevation to
// split shallow from deep water.
func (g *Generator) assignBiomes(seed uint32) {
	noise := opensimplex.NewNormalized(int64(seed) + 2)

	for i := 0; i < g.grid.CellCount(); i++ {
		cell := g.grid.Cell(i)
		sample := noise.Eval2(cell.Position.X*noiseFrequency, cell.Position.Z*noiseFrequency)

		if cell.Elevation >= g.cfg.WaterLevel {
			cell.Terrain = landBiome(sample)
		} else {
			cell.Terrain = waterBiome(sample, cell.Elevation, g.cfg.WaterLevel)
		}
	}
}

func landBiome(sample float64) hexgrid.Terrain {
	switch {
	case sample < 0.2:
		return hexgrid.TerrainSand
	case sample < 0.5:
		return hexgrid.TerrainGrass
	case sample < 0.75:
		return hexgrid.TerrainForest
	case sample < 0.9:
		return hexgrid.TerrainHills
	default:
		return hexgrid.TerrainMountain
	}
}

func waterBiome(sample float64, elevation, waterLevel int) hexgrid.Terrain {
	if elevation < waterLevel-1 {
		return hexgrid.TerrainDeepWater
	}
	if sample > 0.85 {
		return hexgrid.TerrainReef
	}
	return hexgrid.TerrainShallowWater
}

// applyVariants swaps contiguous same-terrain patches for the terrain's
// variant type. The pass places a random number of chunks, each a bounded
// flood fill, and gives up quietly once the retry guard trips.
func (g *Generator) applyVariants() {
	placed := 0
	want := g.randRange(g.cfg.VariantChunkMin, g.cfg.VariantChunkMax+1)

	for guard := 0; placed < want && guard < guardLimit; guard++ {
		seedCell := g.grid.Cell(g.rng.Intn(g.grid.CellCount()))
		variant := hexgrid.TerrainInfoOf(seedCell.Terrain).Variant
		if variant == seedCell.Terrain {
			continue
		}
		g.fillVariantChunk(seedCell, variant, g.randRange(g.cfg.VariantSizeMin, g.cfg.VariantSizeMax+1))
		placed++
	}
	if placed < want {
		slog.Warn("variant pass ended early", "placed", placed, "wanted", want)
	}
}

// fillVariantChunk flood fills outward from the seed cell through cells of
// the same base terrain, rewriting them to the variant. Same
// distance-plus-jitter priority as the land chunks, so patches come out
// irregular rather than circular.
func (g *Generator) fillVariantChunk(first *hexgrid.Cell, variant hexgrid.Terrain, chunkSize int) {
	base := first.Terrain
	phase := g.grid.NextSearchPhase()
	first.SearchPhase = phase
	first.Distance = 0
	first.SearchHeuristic = 0
	g.frontier.Enqueue(first)
	center := first.Coords

	for size := 0; size < chunkSize; size++ {
		current := g.frontier.Dequeue()
		if current == nil {
			break
		}
		current.Terrain = variant

		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase || neighbor.Terrain != base {
				continue
			}
			neighbor.SearchPhase = phase
			neighbor.Distance = neighbor.Coords.DistanceTo(center)
			neighbor.SearchHeuristic = g.jitter()
			g.frontier.Enqueue(neighbor)
		}
	}
	g.frontier.Clear()
}
