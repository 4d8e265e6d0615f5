// Command hexgen builds a hex grid, generates its terrain and territories
// from a seed, reports the terrain distribution, and optionally saves a
// snapshot database.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexfield/internal/config"
	"github.com/talgya/hexfield/internal/hexgrid"
	"github.com/talgya/hexfield/internal/mapgen"
	"github.com/talgya/hexfield/internal/store"
)

func main() {
	configPath := flag.String("config", "hexfield.yaml", "YAML config path")
	seed := flag.Uint("seed", 0, "generation seed (0 = random, overrides config)")
	territories := flag.Int("territories", 0, "territory count (overrides config)")
	snapshot := flag.String("db", "", "snapshot SQLite path (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Generator.Seed = uint32(*seed)
	}
	if *territories > 0 {
		cfg.Territories = *territories
	}
	if *snapshot != "" {
		cfg.SnapshotPath = *snapshot
	}

	grid := hexgrid.New(cfg.ChunkCountX, cfg.ChunkCountZ)
	grid.Build(cfg.WithChunks)
	slog.Info("grid built",
		"cells", humanize.Comma(int64(grid.CellCount())),
		"width", grid.CellCountX(),
		"height", grid.CellCountZ(),
	)

	gen := mapgen.New(grid, cfg.Generator)
	effectiveSeed := gen.Generate()
	terrs := gen.CreateTerritories(cfg.Territories)

	reportTerrain(grid)
	for _, t := range terrs {
		slog.Info("territory",
			"name", t.Name,
			"capital", t.Capital,
			"cells", humanize.Comma(int64(len(t.Cells))),
			"borders", len(t.Borders),
		)
	}

	if cfg.SnapshotPath != "" {
		db, err := store.Open(cfg.SnapshotPath)
		if err != nil {
			slog.Error("failed to open snapshot db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.SaveSnapshot(grid, terrs, effectiveSeed); err != nil {
			slog.Error("failed to save snapshot", "error", err)
			os.Exit(1)
		}
		slog.Info("snapshot saved", "path", cfg.SnapshotPath, "seed", effectiveSeed)
	}
}

func reportTerrain(grid *hexgrid.Grid) {
	counts := make(map[hexgrid.Terrain]int)
	land := 0
	for i := 0; i < grid.CellCount(); i++ {
		c := grid.Cell(i)
		counts[c.Terrain]++
		if c.IsLand() {
			land++
		}
	}
	for t := hexgrid.Terrain(0); int(t) < hexgrid.TerrainCount(); t++ {
		if counts[t] == 0 {
			continue
		}
		slog.Info("terrain", "type", hexgrid.TerrainName(t), "count", humanize.Comma(int64(counts[t])))
	}
	slog.Info("land fraction",
		"land", humanize.Comma(int64(land)),
		"total", humanize.Comma(int64(grid.CellCount())),
		"pct", 100*land/grid.CellCount(),
	)
}
