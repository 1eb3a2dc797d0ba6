// Package gimtest builds synthetic GIM files for tests.
package gimtest

import "encoding/binary"

var le = binary.LittleEndian

// Chunk types
const (
	TypeFile    = 0x0002
	TypePicture = 0x0003
	TypeImage   = 0x0004
	TypePalette = 0x0005
	TypeInfo    = 0x00ff
)

// Header returns the fixed 16 byte file header.
func Header() []byte {
	return []byte{'M', 'I', 'G', '.', '0', '0', '.', '1', 'P', 'S', 'P', 0, 0, 0, 0, 0}
}

// Chunk returns a chunk of type t laid out as header, children and then
// data.
func Chunk(t uint16, data []byte, children ...[]byte) []byte {
	var body []byte
	for _, c := range children {
		body = append(body, c...)
	}
	b := make([]byte, 16, 16+len(body)+len(data))
	le.PutUint16(b[0:], t)
	le.PutUint32(b[4:], uint32(16+len(body)+len(data)))
	le.PutUint32(b[8:], 16)
	le.PutUint32(b[12:], uint32(16+len(body)))
	b = append(b, body...)
	return append(b, data...)
}

// Record describes an image or palette chunk.
type Record struct {
	Format      uint16
	Order       uint16
	Width       uint16
	Height      uint16
	PitchAlign  uint16
	HeightAlign uint16
	LevelCount  uint16
	FrameCount  uint16
	Data        []byte
}

// Bytes returns the 48 byte header, offset table and pixel data.
func (r Record) Bytes() []byte {
	levels, frames := r.LevelCount, r.FrameCount
	if levels == 0 {
		levels = 1
	}
	if frames == 0 {
		frames = 1
	}
	pitch, height := r.PitchAlign, r.HeightAlign
	if pitch == 0 {
		pitch = 1
	}
	if height == 0 {
		height = 1
	}

	n := int(levels) * int(frames)
	images := 48 + n*4
	if images%16 != 0 {
		images += 16 - images%16
	}

	b := make([]byte, images, images+len(r.Data))
	le.PutUint16(b[0:], 48)
	le.PutUint16(b[4:], r.Format)
	le.PutUint16(b[6:], r.Order)
	le.PutUint16(b[8:], r.Width)
	le.PutUint16(b[10:], r.Height)
	le.PutUint16(b[14:], pitch)
	le.PutUint16(b[16:], height)
	le.PutUint16(b[18:], 2)
	le.PutUint32(b[24:], 48)
	le.PutUint32(b[28:], uint32(images))
	le.PutUint32(b[32:], uint32(images+len(r.Data)))
	le.PutUint16(b[42:], levels)
	le.PutUint16(b[46:], frames)
	for i := 0; i < n; i++ {
		le.PutUint32(b[48+i*4:], uint32(images))
	}
	return append(b, r.Data...)
}

// Build returns a complete file with a single picture holding the image and,
// if not nil, the palette.
func Build(image Record, palette *Record) []byte {
	children := [][]byte{Chunk(TypeImage, image.Bytes())}
	if palette != nil {
		children = append(children, Chunk(TypePalette, palette.Bytes()))
	}
	return File(Chunk(TypePicture, nil, children...))
}

// File wraps pictures in a root chunk behind the file header.
func File(pictures ...[]byte) []byte {
	return append(Header(), Chunk(TypeFile, nil, pictures...)...)
}
