package gim

import "fmt"

// Header describes the pixels of an image or palette. Offsets are relative to
// the start of the header.
type Header struct {
	HeaderSize     uint16
	Reference      uint16
	Format         Format
	Order          Order
	Width          uint16
	Height         uint16
	BitsPerPixel   uint16
	PitchAlign     uint16
	HeightAlign    uint16
	DimensionCount uint16
	Offsets        uint32
	Images         uint32
	Total          uint32
	PlaneMask      uint32
	LevelType      uint16
	LevelCount     uint16
	FrameType      uint16
	FrameCount     uint16
}

// Picture is a single image with its optional palette. The slices refer to
// the buffer the picture was loaded from.
type Picture struct {
	Image        Header
	ImageOffsets []uint32
	ImageData    []byte

	Palette        *Header
	PaletteOffsets []uint32
	PaletteData    []byte
}

func readImageHeader(b []byte, offset int) (Header, error) {
	if offset > len(b)-imageHeaderSize {
		return Header{}, fmt.Errorf("%w: image header at %d, file is %d bytes", ErrTruncatedChunk, offset, len(b))
	}
	p := b[offset : offset+imageHeaderSize]

	format, err := parseFormat(le.Uint16(p[4:6]))
	if err != nil {
		return Header{}, err
	}
	order, err := parseOrder(le.Uint16(p[6:8]))
	if err != nil {
		return Header{}, err
	}

	return Header{
		HeaderSize:     le.Uint16(p[0:2]),
		Reference:      le.Uint16(p[2:4]),
		Format:         format,
		Order:          order,
		Width:          le.Uint16(p[8:10]),
		Height:         le.Uint16(p[10:12]),
		BitsPerPixel:   le.Uint16(p[12:14]),
		PitchAlign:     le.Uint16(p[14:16]),
		HeightAlign:    le.Uint16(p[16:18]),
		DimensionCount: le.Uint16(p[18:20]),
		Offsets:        le.Uint32(p[24:28]),
		Images:         le.Uint32(p[28:32]),
		Total:          le.Uint32(p[32:36]),
		PlaneMask:      le.Uint32(p[36:40]),
		LevelType:      le.Uint16(p[40:42]),
		LevelCount:     le.Uint16(p[42:44]),
		FrameType:      le.Uint16(p[44:46]),
		FrameCount:     le.Uint16(p[46:48]),
	}, nil
}

// readRecord decodes the header, offset table and payload of an image or
// palette chunk.
func readRecord(b []byte, c Chunk) (Header, []uint32, []byte, error) {
	base := c.DataOffset()
	h, err := readImageHeader(b, base)
	if err != nil {
		return Header{}, nil, nil, err
	}

	n := int(h.LevelCount) * int(h.FrameCount)
	start := add(base, h.Offsets)
	if start > len(b) || n > (len(b)-start)/4 {
		return Header{}, nil, nil, fmt.Errorf("%w: %s offset table", ErrTruncatedChunk, c.Type)
	}
	offsets := make([]uint32, n)
	for i := range offsets {
		offsets[i] = le.Uint32(b[start+i*4:])
	}

	start, end := add(base, h.Images), add(base, h.Total)
	if start > end || end > len(b) {
		return Header{}, nil, nil, fmt.Errorf("%w: %s data [%d:%d], file is %d bytes", ErrTruncatedChunk, c.Type, start, end, len(b))
	}

	return h, offsets, b[start:end], nil
}

// LoadPicture validates the file in b and returns its picture.
func LoadPicture(b []byte) (*Picture, error) {
	if err := ValidateHeader(b); err != nil {
		return nil, err
	}

	root, err := ReadChunk(b, RootOffset)
	if err != nil {
		return nil, err
	}

	chunk, ok, err := FindChild(b, root, ChunkPicture)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPictureNotFound
	}

	var (
		p        Picture
		hasImage bool
	)
	if err := WalkChildren(b, chunk, func(c Chunk) error {
		switch c.Type {
		case ChunkImage:
			h, offsets, data, err := readRecord(b, c)
			if err != nil {
				return err
			}
			p.Image, p.ImageOffsets, p.ImageData = h, offsets, data
			hasImage = true
		case ChunkPalette:
			h, offsets, data, err := readRecord(b, c)
			if err != nil {
				return err
			}
			p.Palette, p.PaletteOffsets, p.PaletteData = &h, offsets, data
		default:
			return fmt.Errorf("%w: %s at %d", ErrUnsupportedChunk, c.Type, c.Offset)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if !hasImage {
		return nil, ErrImageHeaderNotFound
	}

	if p.Image.FrameCount > 1 || p.Image.LevelCount > 1 {
		return nil, fmt.Errorf("%w: %d frames, %d levels", ErrUnsupportedMultiFrame, p.Image.FrameCount, p.Image.LevelCount)
	}

	return &p, nil
}
