package gim

import (
	"fmt"
	"math"
)

// Chunk is a decoded chunk header. Next, Child and Data are relative to
// Offset, the absolute position of the chunk within the file.
type Chunk struct {
	Type   ChunkType
	Offset int
	Next   uint32
	Child  uint32
	Data   uint32
}

// add returns off+rel, saturating rather than wrapping on overflow.
func add(off int, rel uint32) int {
	if uint64(rel) > uint64(math.MaxInt-off) {
		return math.MaxInt
	}
	return off + int(rel)
}

// End returns the absolute offset of the first byte after the chunk.
func (c Chunk) End() int {
	return add(c.Offset, c.Next)
}

// DataOffset returns the absolute offset of the chunk data.
func (c Chunk) DataOffset() int {
	return add(c.Offset, c.Data)
}

// ReadChunk decodes the chunk header at offset.
func ReadChunk(b []byte, offset int) (Chunk, error) {
	if offset < 0 || offset > len(b)-chunkSize {
		return Chunk{}, fmt.Errorf("%w: chunk header at %d, file is %d bytes", ErrTruncatedChunk, offset, len(b))
	}
	h := b[offset : offset+chunkSize]
	return Chunk{
		Type:   ChunkType(le.Uint16(h[0:2])),
		Offset: offset,
		Next:   le.Uint32(h[4:8]),
		Child:  le.Uint32(h[8:12]),
		Data:   le.Uint32(h[12:16]),
	}, nil
}

// readChild decodes a child chunk header that must fit before end.
func readChild(b []byte, offset, end int) (Chunk, error) {
	if offset > end-chunkSize {
		return Chunk{}, fmt.Errorf("%w: chunk header at %d crosses parent boundary %d", ErrTruncatedChunk, offset, end)
	}
	c, err := ReadChunk(b, offset)
	if err != nil {
		return Chunk{}, err
	}
	if c.Next == 0 {
		return Chunk{}, fmt.Errorf("%w: %s chunk at %d", ErrInfiniteLoop, c.Type, offset)
	}
	return c, nil
}

// WalkChildren calls fn for each child of parent in file order. Iteration
// stops at the first error which is returned.
func WalkChildren(b []byte, parent Chunk, fn func(Chunk) error) error {
	end := parent.End()
	for off := add(parent.Offset, parent.Child); off < end; {
		c, err := readChild(b, off, end)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		off = c.End()
	}
	return nil
}

// FindChild returns the child of parent with the wanted type. If more than
// one child matches, the last one wins.
func FindChild(b []byte, parent Chunk, wanted ChunkType) (Chunk, bool, error) {
	var (
		found Chunk
		ok    bool
	)
	if err := WalkChildren(b, parent, func(c Chunk) error {
		if c.Type == wanted {
			found, ok = c, true
		}
		return nil
	}); err != nil {
		return Chunk{}, false, err
	}
	return found, ok, nil
}
