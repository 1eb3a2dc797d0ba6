/*
Package archive implements a reader for the simple length-prefixed archives
found on a number of PSP discs.

An archive starts with a little-endian 32-bit count of entries followed by
the 32-bit length of each entry. The data of the first entry starts at the
next 16 byte boundary after the lengths and each following entry starts at
the next 16 byte boundary after the end of the previous one.

The last entry is normally a check block starting with "PSPCHECK" which is
not part of the archive contents.
*/
package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	alignment  = 16
	maxEntries = 10000
)

// CheckSignature is the start of the trailing check entry.
const CheckSignature = "PSPCHECK"

var (
	errBadCount = errors.New("archive: suspicious number of entries")
	errNoCheck  = errors.New("archive: last entry is not a PSPCHECK signature")
)

// Entry is a single file stored within the archive.
type Entry struct {
	Offset int64
	Length int64
}

// Reader provides access to the entries of an archive.
type Reader struct {
	r       io.ReaderAt
	entries []Entry
}

func align(n int64) int64 {
	if n%alignment != 0 {
		n += alignment - n%alignment
	}
	return n
}

// NewReader reads the archive index from r which holds size bytes.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	var tmp [4]byte
	if _, err := r.ReadAt(tmp[:], 0); err != nil {
		return nil, fmt.Errorf("archive: unable to read number of entries: %w", err)
	}

	n := binary.LittleEndian.Uint32(tmp[:])
	if n == 0 || n > maxEntries {
		return nil, fmt.Errorf("%w: %d", errBadCount, n)
	}

	lengths := make([]uint32, n)
	if err := binary.Read(io.NewSectionReader(r, 4, int64(n)*4), binary.LittleEndian, lengths); err != nil {
		return nil, fmt.Errorf("archive: unable to read entry lengths: %w", err)
	}

	entries := make([]Entry, n)
	offset := align(4 + int64(n)*4)
	for i, l := range lengths {
		if offset+int64(l) > size {
			return nil, fmt.Errorf("archive: entry %d at 0x%X with length 0x%X exceeds archive size 0x%X", i, offset, l, size)
		}
		entries[i] = Entry{Offset: offset, Length: int64(l)}
		offset = align(offset + int64(l))
	}

	return &Reader{
		r:       r,
		entries: entries,
	}, nil
}

// Entries returns every entry including any check entry.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// Open returns a reader for the i-th entry.
func (r *Reader) Open(i int) *io.SectionReader {
	e := r.entries[i]
	return io.NewSectionReader(r.r, e.Offset, e.Length)
}

// Check verifies that the last entry is the check block.
func (r *Reader) Check() error {
	e := r.entries[len(r.entries)-1]
	b := make([]byte, len(CheckSignature))
	if e.Length < int64(len(b)) {
		return errNoCheck
	}
	if _, err := r.r.ReadAt(b, e.Offset); err != nil {
		return err
	}
	if string(b) != CheckSignature {
		return errNoCheck
	}
	return nil
}

var suffixes = []struct {
	magic  []byte
	suffix string
}{
	{[]byte("MIG."), "gim"},
	{[]byte("MThd"), "mid"},
	{[]byte("PPHD"), "phd"},
	{[]byte("PSMF"), "psmf"},
	{[]byte("VAGp"), "vag"},
}

// Suffix guesses a file extension from the start of the entry data in b.
func Suffix(b []byte) string {
	for _, s := range suffixes {
		if bytes.HasPrefix(b, s.magic) {
			return s.suffix
		}
	}
	return "bin"
}
