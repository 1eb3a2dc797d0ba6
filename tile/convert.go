package tile

import "errors"

var errShortBuffer = errors.New("tile: buffer too small")

func check(l Layout, linear, tiled []byte, size int) error {
	if size <= 0 || len(linear) < l.Width*l.Height*size || len(tiled) < l.Pixels()*size {
		return errShortBuffer
	}
	return nil
}

// Untile copies the tiled pixels in src to their linear position in dst. Each
// pixel is size bytes. Pixels in dst not covered by a whole tile are left
// untouched.
func Untile(dst, src []byte, l Layout, size int) error {
	if err := check(l, dst, src, size); err != nil {
		return err
	}
	for i, n := 0, l.Pixels(); i < n; i++ {
		x, y := l.Coord(i)
		o := (y*l.Width + x) * size
		copy(dst[o:o+size], src[i*size:(i+1)*size])
	}
	return nil
}

// Tile is the inverse of Untile, it copies the linear pixels in src into
// tiled order in dst.
func Tile(dst, src []byte, l Layout, size int) error {
	if err := check(l, src, dst, size); err != nil {
		return err
	}
	for i, n := 0, l.Pixels(); i < n; i++ {
		x, y := l.Coord(i)
		o := (y*l.Width + x) * size
		copy(dst[i*size:(i+1)*size], src[o:o+size])
	}
	return nil
}
