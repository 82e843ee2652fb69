package engine

// Tile is a policy tile. Tiles of the same kind are interchangeable.
type Tile int

const (
	TileLiberal Tile = iota
	TileFascist
)

var tileNames = map[Tile]string{
	TileLiberal: "Liberal",
	TileFascist: "Fascist",
}

func (t Tile) String() string {
	if s, ok := tileNames[t]; ok {
		return s
	}
	return "Unknown"
}

// ParseTile maps a kind label back to a Tile.
func ParseTile(s string) (Tile, bool) {
	for t, name := range tileNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

const (
	LiberalTiles = 6
	FascistTiles = 11
	TotalTiles   = LiberalTiles + FascistTiles
)

// StandardTiles returns the 17-tile policy supply in a fixed order.
func StandardTiles() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for i := 0; i < LiberalTiles; i++ {
		tiles = append(tiles, TileLiberal)
	}
	for i := 0; i < FascistTiles; i++ {
		tiles = append(tiles, TileFascist)
	}
	return tiles
}

func tileLabels(tiles []Tile) []string {
	s := make([]string, len(tiles))
	for i, t := range tiles {
		s[i] = t.String()
	}
	return s
}
