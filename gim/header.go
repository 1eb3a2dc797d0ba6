package gim

// Fixed header tags as they appear on disk
var (
	Signature = [4]byte{'M', 'I', 'G', '.'}
	Version   = [4]byte{'0', '0', '.', '1'}
	StylePSP  = [4]byte{'P', 'S', 'P', 0}
)

// Magic is the complete fixed prefix of every supported file.
const Magic = "MIG.00.1PSP\x00"

// FileHeader is the 16 byte header at the start of every file.
type FileHeader struct {
	Signature [4]byte
	Version   [4]byte
	Style     [4]byte
	Option    uint32
}

// ReadHeader decodes the file header without validating it.
func ReadHeader(b []byte) (FileHeader, error) {
	var h FileHeader
	if len(b) < headerSize {
		return h, ErrTruncatedChunk
	}
	copy(h.Signature[:], b[0:4])
	copy(h.Version[:], b[4:8])
	copy(h.Style[:], b[8:12])
	h.Option = le.Uint32(b[12:16])
	return h, nil
}

// ValidateHeader checks the signature, version and style of the file in b.
func ValidateHeader(b []byte) error {
	h, err := ReadHeader(b)
	if err != nil {
		return err
	}
	switch {
	case h.Signature != Signature:
		return ErrBadSignature
	case h.Version != Version:
		return ErrUnsupportedVersion
	case h.Style != StylePSP:
		return ErrUnsupportedStyle
	}
	return nil
}
