package hexgrid

// Terrain identifies an entry in the terrain catalog.
type Terrain uint8

const (
	TerrainDeepWater Terrain = iota
	TerrainShallowWater
	TerrainReef
	TerrainSand
	TerrainGrass
	TerrainMeadow
	TerrainForest
	TerrainRainforest
	TerrainHills
	TerrainMountain
)

// TerrainInfo describes one terrain type for external collaborators:
// whether the cell counts as land and which traversal cost class it falls
// into. Variant names the terrain substituted during the generator's
// variety pass; types without a distinct variant name themselves.
type TerrainInfo struct {
	Name    string
	Land    bool
	Cost    int
	Variant Terrain
}

// terrains is the catalog, indexed by Terrain id.
var terrains = []TerrainInfo{
	{Name: "Deep Water", Land: false, Cost: 3, Variant: TerrainDeepWater},
	{Name: "Shallow Water", Land: false, Cost: 2, Variant: TerrainShallowWater},
	{Name: "Reef", Land: false, Cost: 2, Variant: TerrainReef},
	{Name: "Sand", Land: true, Cost: 1, Variant: TerrainSand},
	{Name: "Grass", Land: true, Cost: 1, Variant: TerrainMeadow},
	{Name: "Meadow", Land: true, Cost: 1, Variant: TerrainMeadow},
	{Name: "Forest", Land: true, Cost: 2, Variant: TerrainRainforest},
	{Name: "Rainforest", Land: true, Cost: 2, Variant: TerrainRainforest},
	{Name: "Hills", Land: true, Cost: 2, Variant: TerrainHills},
	{Name: "Mountain", Land: true, Cost: 3, Variant: TerrainMountain},
}

// TerrainCount returns the number of catalog entries.
func TerrainCount() int {
	return len(terrains)
}

// TerrainInfoOf returns the catalog entry for the given id. Ids past the end
// of the catalog clamp to the last entry; this fallback is a deliberate
// content-lookup policy, not an error.
func TerrainInfoOf(t Terrain) TerrainInfo {
	if int(t) >= len(terrains) {
		return terrains[len(terrains)-1]
	}
	return terrains[t]
}

// TerrainName returns a human-readable name for a terrain id.
func TerrainName(t Terrain) string {
	return TerrainInfoOf(t).Name
}
