package gim

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature is returned when the file does not start with "MIG."
	ErrBadSignature = errors.New("gim: invalid signature")
	// ErrUnsupportedVersion is returned for anything other than version 1.00
	ErrUnsupportedVersion = errors.New("gim: unsupported version")
	// ErrUnsupportedStyle is returned for anything other than PSP style files
	ErrUnsupportedStyle = errors.New("gim: unsupported style")
	// ErrTruncatedChunk is returned when a header or table would extend past
	// the data available to it
	ErrTruncatedChunk = errors.New("gim: truncated chunk")
	// ErrInfiniteLoop is returned when a chunk does not advance to its next
	// sibling
	ErrInfiniteLoop = errors.New("gim: chunk does not advance")
	// ErrPictureNotFound is returned when the root chunk has no picture
	ErrPictureNotFound = errors.New("gim: picture chunk not found")
	// ErrImageHeaderNotFound is returned when a picture has no image chunk
	ErrImageHeaderNotFound = errors.New("gim: image header not found")
	// ErrUnsupportedChunk is returned for unexpected chunks inside a picture
	ErrUnsupportedChunk = errors.New("gim: unsupported chunk")
	// ErrUnsupportedMultiFrame is returned for pictures with more than one
	// frame or mipmap level
	ErrUnsupportedMultiFrame = errors.New("gim: multiple frames or levels are not supported")
	// ErrPixelDataOutOfBounds is matched by every *OutOfBoundsError
	ErrPixelDataOutOfBounds = errors.New("gim: pixel data out of bounds")
	// ErrUnsupportedImageFormat is returned for unknown image formats and for
	// known formats that cannot be converted
	ErrUnsupportedImageFormat = errors.New("gim: unsupported image format")
	// ErrUnsupportedOrder is returned for unknown pixel orders
	ErrUnsupportedOrder = errors.New("gim: unsupported pixel order")
	// ErrUnsupportedPaletteFormat is returned for palettes that are neither
	// RGBA8888 nor RGBA5551
	ErrUnsupportedPaletteFormat = errors.New("gim: unsupported palette format")
	// ErrMissingPalette is returned when an indexed image has no palette
	ErrMissingPalette = errors.New("gim: indexed image has no palette")
	// ErrInvalidDimensions is returned when an image has no pixels
	ErrInvalidDimensions = errors.New("gim: invalid image dimensions")
)

// OutOfBoundsError records a read of pixel data past the end of the payload.
type OutOfBoundsError struct {
	Offset int
	Len    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("gim: source index %d out of bounds (data length %d)", e.Offset, e.Len)
}

// Is reports whether target is ErrPixelDataOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrPixelDataOutOfBounds
}
