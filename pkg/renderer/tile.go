package renderer

import (
	"image"
	"math/rand"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Seed   int64           // Seed of the tile's private random stream
}

// NewTile creates a tile whose random stream depends only on the scene seed and tile id
func NewTile(id int, bounds image.Rectangle, sceneSeed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Seed:   tileSeed(sceneSeed, id),
	}
}

// NewRandom returns a fresh generator positioned at the start of the tile's stream
func (t *Tile) NewRandom() *rand.Rand {
	return rand.New(rand.NewSource(t.Seed))
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, sceneSeed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), sceneSeed))
			tileID++
		}
	}

	return tiles
}

// tileSeed mixes the scene seed and tile id with the splitmix64 finalizer
func tileSeed(sceneSeed int64, id int) int64 {
	z := uint64(sceneSeed) + uint64(id+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
