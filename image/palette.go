package image

import (
	"fmt"

	"github.com/bodgit/gimtool/gim"
)

// NormalizePalette returns the palette data as 256 RGBA8888 entries. Entries
// missing from a short palette are transparent black.
func NormalizePalette(h gim.Header, data []byte) ([]byte, error) {
	switch h.Format {
	case gim.RGBA8888:
		if len(data) >= paletteBytes {
			return data[:paletteBytes:paletteBytes], nil
		}
		out := make([]byte, paletteBytes)
		copy(out, data)
		return out, nil
	case gim.RGBA5551:
		out := make([]byte, paletteBytes)
		for i := 0; i < paletteColors && i*2+1 < len(data); i++ {
			// Color is packed as ABBBBBGGGGGRRRRR
			p := uint16(data[i*2]) | uint16(data[i*2+1])<<8
			out[i*4+0] = byte(p&0x1f) << 3
			out[i*4+1] = byte(p>>5&0x1f) << 3
			out[i*4+2] = byte(p>>10&0x1f) << 3
			if p&0x8000 != 0 {
				out[i*4+3] = 0xff
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", gim.ErrUnsupportedPaletteFormat, h.Format)
	}
}
