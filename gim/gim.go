/*
Package gim implements a reader for the GIM texture container used by Sony
PSP titles.

A file starts with a 16 byte header followed by a tree of chunks. Each chunk
starts with a 16 byte header holding its type and three offsets, all relative
to the start of the chunk: the next sibling, the first child and the chunk
data. A chunk owns every byte up to its next sibling so children are found by
walking from the child offset until that boundary is reached.

Pictures hold an image chunk and optionally a palette chunk. The data of both
starts with the same 48 byte header describing the pixel format, the layout
and where the pixels are.

Nothing is copied while parsing; payloads returned by this package are
sub-slices of the buffer passed in.
*/
package gim

import "encoding/binary"

const (
	headerSize      = 16
	chunkSize       = 16
	imageHeaderSize = 48

	// RootOffset is where the root chunk starts, immediately after the
	// file header
	RootOffset = headerSize
)

var le = binary.LittleEndian
