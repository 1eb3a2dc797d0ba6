package gim

import (
	"fmt"
	"strconv"
)

// ChunkType identifies the contents of a chunk.
type ChunkType uint16

// Known chunk types
const (
	ChunkBlock    ChunkType = 0x0001
	ChunkFile     ChunkType = 0x0002
	ChunkPicture  ChunkType = 0x0003
	ChunkImage    ChunkType = 0x0004
	ChunkPalette  ChunkType = 0x0005
	ChunkSequence ChunkType = 0x0006
	ChunkFileInfo ChunkType = 0x00ff
)

var chunkNames = map[ChunkType]string{
	ChunkBlock:    "block",
	ChunkFile:     "file",
	ChunkPicture:  "picture",
	ChunkImage:    "image",
	ChunkPalette:  "palette",
	ChunkSequence: "sequence",
	ChunkFileInfo: "file info",
}

func (t ChunkType) String() string {
	if s, ok := chunkNames[t]; ok {
		return s
	}
	return "0x" + strconv.FormatUint(uint64(t), 16)
}

// Format is the pixel format of an image or palette.
type Format uint16

// Pixel formats
const (
	RGBA5650 Format = 0
	RGBA5551 Format = 1
	RGBA4444 Format = 2
	RGBA8888 Format = 3
	Index4   Format = 4
	Index8   Format = 5
	Index16  Format = 6
	Index32  Format = 7
	DXT1     Format = 8
	DXT3     Format = 9
	DXT5     Format = 10
	DXT1Ext  Format = 264
	DXT3Ext  Format = 265
	DXT5Ext  Format = 266
)

var formatNames = map[Format]string{
	RGBA5650: "RGBA5650",
	RGBA5551: "RGBA5551",
	RGBA4444: "RGBA4444",
	RGBA8888: "RGBA8888",
	Index4:   "INDEX4",
	Index8:   "INDEX8",
	Index16:  "INDEX16",
	Index32:  "INDEX32",
	DXT1:     "DXT1",
	DXT3:     "DXT3",
	DXT5:     "DXT5",
	DXT1Ext:  "DXT1EXT",
	DXT3Ext:  "DXT3EXT",
	DXT5Ext:  "DXT5EXT",
}

func parseFormat(v uint16) (Format, error) {
	f := Format(v)
	if _, ok := formatNames[f]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedImageFormat, v)
	}
	return f, nil
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Indexed reports whether pixels of this format are palette indices.
func (f Format) Indexed() bool {
	switch f {
	case Index4, Index8, Index16, Index32:
		return true
	}
	return false
}

// Order is the arrangement of pixels within the payload.
type Order uint16

// Pixel orders
const (
	// Normal is plain row-major order
	Normal Order = 0
	// Tiled is the PSP native order where the image is split into fixed
	// size tiles stored one after another
	Tiled Order = 1
)

func parseOrder(v uint16) (Order, error) {
	switch o := Order(v); o {
	case Normal, Tiled:
		return o, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedOrder, v)
	}
}

func (o Order) String() string {
	switch o {
	case Normal:
		return "Normal"
	case Tiled:
		return "PSPImage"
	}
	return "Order(" + strconv.Itoa(int(o)) + ")"
}
