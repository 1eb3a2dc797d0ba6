/*
Package cdimage splits the PSXCD.IMG file system image used by some
PlayStation titles into its individual files.

The image is accompanied by two tables. PSXCDNAM.BIN holds a 32 byte NUL
padded name for each file and PSXCDLOC.BIN holds a matching 12 byte record
of the first block, the number of blocks and the size in bytes. Blocks are
2048 bytes. The tables end at the first empty name.
*/
package cdimage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BlockSize is the size of each block in the image
	BlockSize = 0x800

	// NamesFile, LocationsFile and ImageFile are the expected filenames
	NamesFile     = "PSXCDNAM.BIN"
	LocationsFile = "PSXCDLOC.BIN"
	ImageFile     = "PSXCD.IMG"

	nameSize = 32
)

var errBadName = errors.New("cdimage: invalid file name")

type location struct {
	StartBlock uint32
	NumBlocks  uint32
	FileSize   uint32
}

// File is a single file stored in the image.
type File struct {
	Name       string
	StartBlock uint32
	NumBlocks  uint32
	Size       uint32
}

// Offset returns the byte offset of the file within the image.
func (f File) Offset() int64 {
	return int64(f.StartBlock) * BlockSize
}

// Image is an opened disc image.
type Image struct {
	f     *os.File
	files []File
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func readTables(dir string) ([]File, error) {
	names, err := ioutil.ReadFile(filepath.Join(dir, NamesFile))
	if err != nil {
		return nil, err
	}

	b, err := ioutil.ReadFile(filepath.Join(dir, LocationsFile))
	if err != nil {
		return nil, err
	}
	locations := make([]location, len(b)/binary.Size(location{}))
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, locations); err != nil {
		return nil, err
	}

	var files []File
	for i, l := range locations {
		if (i+1)*nameSize > len(names) {
			break
		}
		raw := names[i*nameSize : (i+1)*nameSize]
		if raw[0] == 0 {
			break
		}
		name := string(bytes.TrimRight(raw, "\x00"))
		if !validName(name) {
			return nil, fmt.Errorf("%w: %q", errBadName, name)
		}
		if uint64(l.FileSize) > uint64(l.NumBlocks)*BlockSize {
			return nil, fmt.Errorf("cdimage: %s is %d bytes but only has %d blocks", name, l.FileSize, l.NumBlocks)
		}
		files = append(files, File{
			Name:       name,
			StartBlock: l.StartBlock,
			NumBlocks:  l.NumBlocks,
			Size:       l.FileSize,
		})
	}

	return files, nil
}

// Open reads the tables in dir and opens the image alongside them.
func Open(dir string) (*Image, error) {
	files, err := readTables(dir)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, ImageFile))
	if err != nil {
		return nil, err
	}

	return &Image{
		f:     f,
		files: files,
	}, nil
}

// Close closes the image.
func (m *Image) Close() error {
	return m.f.Close()
}

// Files returns the files in the image.
func (m *Image) Files() []File {
	return m.files
}

// Extract copies the contents of f to w.
func (m *Image) Extract(f File, w io.Writer) error {
	if _, err := io.CopyN(w, io.NewSectionReader(m.f, f.Offset(), int64(f.Size)), int64(f.Size)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("cdimage: unable to read %s: %w", f.Name, err)
	}
	return nil
}
