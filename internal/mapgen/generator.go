// Package mapgen procedurally generates terrain for a hex grid and
// partitions it into territories. A Generator owns an explicit, re-seedable
// random source so the same seed reproduces the same map on every
// participant; no ambient global randomness is consulted during a run.
package mapgen

import (
	"log/slog"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexfield/internal/hexgrid"
)

// Config holds generation parameters. Zero values are not useful; start
// from DefaultConfig.
type Config struct {
	Seed uint32 `yaml:"seed"` // 0 draws a random seed

	LandPercentage int `yaml:"land_percentage"` // target land fraction, 0–100

	WaterLevel   int `yaml:"water_level"`
	ElevationMin int `yaml:"elevation_min"`
	ElevationMax int `yaml:"elevation_max"`

	ChunkSizeMin int `yaml:"chunk_size_min"`
	ChunkSizeMax int `yaml:"chunk_size_max"`

	HighRiseProbability float64 `yaml:"high_rise_probability"`
	SinkProbability     float64 `yaml:"sink_probability"`
	JitterProbability   float64 `yaml:"jitter_probability"`

	RegionCount  int `yaml:"region_count"` // 1–4
	MapBorderX   int `yaml:"map_border_x"`
	MapBorderZ   int `yaml:"map_border_z"`
	RegionBorder int `yaml:"region_border"`

	RiverThreshold     float64 `yaml:"river_threshold"`
	RiverDeepThreshold float64 `yaml:"river_deep_threshold"`
	RiverWidthExponent float64 `yaml:"river_width_exponent"`

	ErosionPercentage int `yaml:"erosion_percentage"` // fraction of erodible cells to smooth away, 0–100

	VariantChunkMin int `yaml:"variant_chunk_min"` // variety-pass chunk count bounds
	VariantChunkMax int `yaml:"variant_chunk_max"`
	VariantSizeMin  int `yaml:"variant_size_min"`
	VariantSizeMax  int `yaml:"variant_size_max"`
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() Config {
	return Config{
		LandPercentage:      50,
		WaterLevel:          3,
		ElevationMin:        -2,
		ElevationMax:        8,
		ChunkSizeMin:        30,
		ChunkSizeMax:        100,
		HighRiseProbability: 0.25,
		SinkProbability:     0.2,
		JitterProbability:   0.25,
		RegionCount:         1,
		MapBorderX:          5,
		MapBorderZ:          5,
		RegionBorder:        5,
		RiverThreshold:      0.82,
		RiverDeepThreshold:  0.93,
		RiverWidthExponent:  4,
		ErosionPercentage:   50,
		VariantChunkMin:     4,
		VariantChunkMax:     10,
		VariantSizeMin:      8,
		VariantSizeMax:      24,
	}
}

// guardLimit soft-bounds every budget and retry loop. Exhausting a guard
// logs a warning and accepts the partial result; it never fails the run.
const guardLimit = 10000

// noiseFrequency scales world positions when sampling the simplex fields.
const noiseFrequency = 0.008

// region is a rectangular offset-coordinate sub-bound keeping continents
// spatially separated during the land budget loop.
type region struct {
	xMin, xMax, zMin, zMax int
}

// Generator drives the full generation pipeline over one grid.
type Generator struct {
	grid *hexgrid.Grid
	cfg  Config

	rng      *rand.Rand
	frontier *hexgrid.CellQueue
	regions  []region
}

// New creates a generator for a built grid.
func New(g *hexgrid.Grid, cfg Config) *Generator {
	return &Generator{
		grid:     g,
		cfg:      cfg,
		frontier: hexgrid.NewCellQueue(),
	}
}

// Generate runs the full pipeline — regions, land budget, rivers, erosion,
// biomes — and returns the effective seed, so a host that passed seed 0
// can store the drawn one and regenerate the identical map later.
func (g *Generator) Generate() uint32 {
	seed := g.cfg.Seed
	if seed == 0 {
		seed = rand.Uint32()
	}
	g.rng = rand.New(rand.NewSource(int64(seed)))

	slog.Info("generating map",
		"seed", seed,
		"cells", g.grid.CellCount(),
		"land_pct", g.cfg.LandPercentage,
	)

	g.createRegions()
	g.createLand()
	g.carveRivers(seed)
	g.erodeLand()
	g.assignBiomes(seed)
	g.applyVariants()

	return seed
}

// createRegions splits the grid's bounding box into up to four sub-boxes
// with border gaps, biasing landmass placement away from a single blob.
func (g *Generator) createRegions() {
	count := g.cfg.RegionCount
	if count < 1 {
		count = 1
	}
	if count > 4 {
		count = 4
	}

	borderX := g.cfg.MapBorderX
	borderZ := g.cfg.MapBorderZ
	width := g.grid.CellCountX()
	height := g.grid.CellCountZ()

	g.regions = g.regions[:0]
	switch count {
	case 1:
		g.regions = append(g.regions, region{
			xMin: borderX, xMax: width - borderX,
			zMin: borderZ, zMax: height - borderZ,
		})
	case 2:
		if g.rng.Float64() < 0.5 {
			g.regions = append(g.regions,
				region{
					xMin: borderX, xMax: width/2 - g.cfg.RegionBorder,
					zMin: borderZ, zMax: height - borderZ,
				},
				region{
					xMin: width/2 + g.cfg.RegionBorder, xMax: width - borderX,
					zMin: borderZ, zMax: height - borderZ,
				},
			)
		} else {
			g.regions = append(g.regions,
				region{
					xMin: borderX, xMax: width - borderX,
					zMin: borderZ, zMax: height/2 - g.cfg.RegionBorder,
				},
				region{
					xMin: borderX, xMax: width - borderX,
					zMin: height/2 + g.cfg.RegionBorder, zMax: height - borderZ,
				},
			)
		}
	case 3:
		third := width / 3
		g.regions = append(g.regions,
			region{
				xMin: borderX, xMax: third - g.cfg.RegionBorder,
				zMin: borderZ, zMax: height - borderZ,
			},
			region{
				xMin: third + g.cfg.RegionBorder, xMax: 2*third - g.cfg.RegionBorder,
				zMin: borderZ, zMax: height - borderZ,
			},
			region{
				xMin: 2*third + g.cfg.RegionBorder, xMax: width - borderX,
				zMin: borderZ, zMax: height - borderZ,
			},
		)
	case 4:
		g.regions = append(g.regions,
			region{
				xMin: borderX, xMax: width/2 - g.cfg.RegionBorder,
				zMin: borderZ, zMax: height/2 - g.cfg.RegionBorder,
			},
			region{
				xMin: width/2 + g.cfg.RegionBorder, xMax: width - borderX,
				zMin: borderZ, zMax: height/2 - g.cfg.RegionBorder,
			},
			region{
				xMin: borderX, xMax: width/2 - g.cfg.RegionBorder,
				zMin: height/2 + g.cfg.RegionBorder, zMax: height - borderZ,
			},
			region{
				xMin: width/2 + g.cfg.RegionBorder, xMax: width - borderX,
				zMin: height/2 + g.cfg.RegionBorder, zMax: height - borderZ,
			},
		)
	}
}

// createLand spends the land budget by raising and sinking terrain chunks
// until the target land cell count is reached or the guard trips.
func (g *Generator) createLand() {
	budget := int(math.Round(float64(g.grid.CellCount()) * float64(g.cfg.LandPercentage) * 0.01))

	for guard := 0; budget > 0 && guard < guardLimit; guard++ {
		sink := g.rng.Float64() < g.cfg.SinkProbability
		for _, r := range g.regions {
			chunkSize := g.randRange(g.cfg.ChunkSizeMin, g.cfg.ChunkSizeMax+1)
			if sink {
				budget = g.sinkTerrain(chunkSize, budget, r)
			} else {
				budget = g.raiseTerrain(chunkSize, budget, r)
				if budget == 0 {
					return
				}
			}
		}
	}
	if budget > 0 {
		slog.Warn("land budget not exhausted, accepting partial landmass", "remaining", budget)
	}
}

// raiseTerrain flood fills a chunk outward from a random cell, lifting
// elevation. Priority is distance from the chunk center plus a small
// random jitter, which keeps landmasses from coming out perfectly round.
func (g *Generator) raiseTerrain(chunkSize, budget int, r region) int {
	phase := g.grid.NextSearchPhase()
	first := g.randomCell(r)
	first.SearchPhase = phase
	first.Distance = 0
	first.SearchHeuristic = 0
	g.frontier.Enqueue(first)
	center := first.Coords

	rise := 1
	if g.rng.Float64() < g.cfg.HighRiseProbability {
		rise = 2
	}

	for size := 0; size < chunkSize; {
		current := g.frontier.Dequeue()
		if current == nil {
			break
		}
		original := current.Elevation
		lifted := original + rise
		if lifted > g.cfg.ElevationMax {
			continue
		}
		current.Elevation = lifted
		if original < g.cfg.WaterLevel && lifted >= g.cfg.WaterLevel {
			budget--
			if budget == 0 {
				break
			}
		}
		size++

		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase {
				continue
			}
			neighbor.SearchPhase = phase
			neighbor.Distance = neighbor.Coords.DistanceTo(center)
			neighbor.SearchHeuristic = g.jitter()
			g.frontier.Enqueue(neighbor)
		}
	}
	g.frontier.Clear()
	return budget
}

// sinkTerrain is the inverse fill: it lowers elevation and reclaims budget
// for any land cell that drops below the water level.
func (g *Generator) sinkTerrain(chunkSize, budget int, r region) int {
	phase := g.grid.NextSearchPhase()
	first := g.randomCell(r)
	first.SearchPhase = phase
	first.Distance = 0
	first.SearchHeuristic = 0
	g.frontier.Enqueue(first)
	center := first.Coords

	sink := 1
	if g.rng.Float64() < g.cfg.HighRiseProbability {
		sink = 2
	}

	for size := 0; size < chunkSize; {
		current := g.frontier.Dequeue()
		if current == nil {
			break
		}
		original := current.Elevation
		lowered := original - sink
		if lowered < g.cfg.ElevationMin {
			continue
		}
		current.Elevation = lowered
		if original >= g.cfg.WaterLevel && lowered < g.cfg.WaterLevel {
			budget++
		}
		size++

		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			neighbor := current.Neighbor(d)
			if neighbor == nil || neighbor.SearchPhase >= phase {
				continue
			}
			neighbor.SearchPhase = phase
			neighbor.Distance = neighbor.Coords.DistanceTo(center)
			neighbor.SearchHeuristic = g.jitter()
			g.frontier.Enqueue(neighbor)
		}
	}
	g.frontier.Clear()
	return budget
}

// carveRivers depresses elevation to water along the ridges of a noise
// field. The ridged transform 1-|2n-1|, sharpened by the width exponent,
// turns the smooth field into narrow winding channels.
func (g *Generator) carveRivers(seed uint32) {
	noise := opensimplex.NewNormalized(int64(seed) + 1)

	for i := 0; i < g.grid.CellCount(); i++ {
		cell := g.grid.Cell(i)
		if cell.Elevation < g.cfg.WaterLevel {
			continue
		}
		sample := noise.Eval2(cell.Position.X*noiseFrequency, cell.Position.Z*noiseFrequency)
		ridge := 1 - math.Abs(2*sample-1)
		ridge = math.Pow(ridge, g.cfg.RiverWidthExponent)

		switch {
		case ridge > g.cfg.RiverDeepThreshold:
			cell.Elevation = maxInt(g.cfg.WaterLevel-2, g.cfg.ElevationMin)
		case ridge > g.cfg.RiverThreshold:
			cell.Elevation = g.cfg.WaterLevel - 1
		}
	}
}

func (g *Generator) jitter() int {
	if g.rng.Float64() < g.cfg.JitterProbability {
		return 1
	}
	return 0
}

// randomCell picks a uniformly random cell inside a region.
func (g *Generator) randomCell(r region) *hexgrid.Cell {
	x := g.randRange(r.xMin, r.xMax)
	z := g.randRange(r.zMin, r.zMax)
	return g.grid.CellAt(x, z)
}

// randRange returns a random int in [min, max).
func (g *Generator) randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rng.Intn(max-min)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
