/*
Package tile converts pixel buffers between tiled and linear order.

A tiled buffer splits the image into rectangles of TileWidth by TileHeight
pixels. Tiles are stored one after another across the tile grid in row-major
order and the pixels of each tile are row-major too. Only whole tiles are
stored; any columns or rows left over at the right or bottom edge have no
source pixels.
*/
package tile

// Layout describes an image of Width by Height pixels split into tiles.
type Layout struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
}

// Linear returns a layout with a single tile covering the whole image, that
// is plain row-major order.
func Linear(width, height int) Layout {
	return Layout{
		Width:      width,
		Height:     height,
		TileWidth:  width,
		TileHeight: height,
	}
}

// Tiles returns the number of whole tiles across and down the image.
func (l Layout) Tiles() (int, int) {
	if l.TileWidth <= 0 || l.TileHeight <= 0 || l.Width <= 0 || l.Height <= 0 {
		return 0, 0
	}
	return l.Width / l.TileWidth, l.Height / l.TileHeight
}

// Pixels returns the number of pixels stored in a tiled buffer.
func (l Layout) Pixels() int {
	x, y := l.Tiles()
	return x * y * l.TileWidth * l.TileHeight
}

// Covers reports whether the tiles cover every pixel of the image.
func (l Layout) Covers() bool {
	return l.Pixels() == l.Width*l.Height
}

// Coord returns the image coordinates of the i-th pixel of a tiled buffer.
// i must be less than Pixels.
func (l Layout) Coord(i int) (int, int) {
	tilesX, _ := l.Tiles()
	tile, p := i/(l.TileWidth*l.TileHeight), i%(l.TileWidth*l.TileHeight)
	tx, ty := tile%tilesX, tile/tilesX
	return tx*l.TileWidth + p%l.TileWidth, ty*l.TileHeight + p/l.TileWidth
}
