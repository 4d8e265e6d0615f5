// Package store persists generated map snapshots to SQLite, letting a
// host restore a session without regenerating.
package store

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexfield/internal/hexgrid"
	"github.com/talgya/hexfield/internal/mapgen"
)

// DB wraps a SQLite connection holding one map snapshot.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a snapshot database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cells (
		idx INTEGER PRIMARY KEY,
		terrain INTEGER NOT NULL,
		elevation INTEGER NOT NULL,
		territory INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS territories (
		territory INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		capital INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS map_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot writes the grid's terrain, elevation, and territory
// assignment plus the territory list and seed (full replace).
func (db *DB) SaveSnapshot(g *hexgrid.Grid, territories []*mapgen.Territory, seed uint32) error {
	slog.Info("saving map snapshot", "cells", g.CellCount(), "territories", len(territories))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cells"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM territories"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO cells (idx, terrain, elevation, territory) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < g.CellCount(); i++ {
		c := g.Cell(i)
		if _, err := stmt.Exec(c.Index, int(c.Terrain), c.Elevation, c.TerritoryID); err != nil {
			return fmt.Errorf("insert cell %d: %w", c.Index, err)
		}
	}

	for t, terr := range territories {
		_, err := tx.Exec(
			"INSERT INTO territories (territory, id, name, capital) VALUES (?, ?, ?, ?)",
			t, terr.ID.String(), terr.Name, terr.Capital,
		)
		if err != nil {
			return fmt.Errorf("insert territory %d: %w", t, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO map_meta (key, value) VALUES ('seed', ?)",
		strconv.FormatUint(uint64(seed), 10),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Seed returns the stored generation seed.
func (db *DB) Seed() (uint32, error) {
	var value string
	if err := db.conn.Get(&value, "SELECT value FROM map_meta WHERE key = 'seed'"); err != nil {
		return 0, err
	}
	seed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", value, err)
	}
	return uint32(seed), nil
}

// LoadSnapshot applies the stored cell states onto a built grid of the
// same size and returns the territory list. Cell membership sets are
// rebuilt from the per-cell territory column.
func (db *DB) LoadSnapshot(g *hexgrid.Grid) ([]*mapgen.Territory, error) {
	var cells []struct {
		Idx       int `db:"idx"`
		Terrain   int `db:"terrain"`
		Elevation int `db:"elevation"`
		Territory int `db:"territory"`
	}
	if err := db.conn.Select(&cells, "SELECT idx, terrain, elevation, territory FROM cells ORDER BY idx"); err != nil {
		return nil, fmt.Errorf("load cells: %w", err)
	}
	if len(cells) != g.CellCount() {
		return nil, fmt.Errorf("snapshot has %d cells, grid has %d", len(cells), g.CellCount())
	}

	var rows []struct {
		Territory int    `db:"territory"`
		ID        string `db:"id"`
		Name      string `db:"name"`
		Capital   int    `db:"capital"`
	}
	if err := db.conn.Select(&rows, "SELECT territory, id, name, capital FROM territories ORDER BY territory"); err != nil {
		return nil, fmt.Errorf("load territories: %w", err)
	}

	territories := make([]*mapgen.Territory, len(rows))
	for _, r := range rows {
		if r.Territory < 0 || r.Territory >= len(rows) {
			return nil, fmt.Errorf("territory index %d out of range", r.Territory)
		}
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("parse territory id %q: %w", r.ID, err)
		}
		territories[r.Territory] = &mapgen.Territory{
			ID:      id,
			Name:    r.Name,
			Capital: r.Capital,
		}
	}

	for _, row := range cells {
		c := g.Cell(row.Idx)
		c.Terrain = hexgrid.Terrain(row.Terrain)
		c.Elevation = row.Elevation
		c.TerritoryID = row.Territory
		if row.Territory >= 0 && row.Territory < len(territories) {
			territories[row.Territory].Cells = append(territories[row.Territory].Cells, row.Idx)
		}
	}

	// Border sets are derived state; recompute them from adjacency.
	for i := 0; i < g.CellCount(); i++ {
		c := g.Cell(i)
		if c.TerritoryID < 0 || c.TerritoryID >= len(territories) {
			continue
		}
		for d := hexgrid.NE; d <= hexgrid.NW; d++ {
			n := c.Neighbor(d)
			if n != nil && n.TerritoryID != -1 && n.TerritoryID != c.TerritoryID {
				territories[c.TerritoryID].Borders = append(territories[c.TerritoryID].Borders, i)
				break
			}
		}
	}

	return territories, nil
}
