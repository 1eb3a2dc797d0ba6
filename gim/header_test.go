package gim

import (
	"testing"

	"github.com/bodgit/gimtool/internal/gimtest"
	"github.com/stretchr/testify/assert"
)

func TestValidateHeader(t *testing.T) {
	tables := []struct {
		name  string
		patch func([]byte)
		err   error
	}{
		{"valid", func([]byte) {}, nil},
		{"signature", func(b []byte) { b[0] = 'm' }, ErrBadSignature},
		{"signature order", func(b []byte) { copy(b[0:4], ".GIM") }, ErrBadSignature},
		{"version", func(b []byte) { b[7] = '2' }, ErrUnsupportedVersion},
		{"style", func(b []byte) { copy(b[8:12], "PS3\x00") }, ErrUnsupportedStyle},
		{"option ignored", func(b []byte) { b[12] = 0xff }, nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b := gimtest.Header()
			table.patch(b)
			err := ValidateHeader(b)
			if table.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, table.err)
		})
	}
}

func TestValidateHeaderTruncated(t *testing.T) {
	assert.ErrorIs(t, ValidateHeader(gimtest.Header()[:15]), ErrTruncatedChunk)
	assert.ErrorIs(t, ValidateHeader(nil), ErrTruncatedChunk)
}

func TestReadHeader(t *testing.T) {
	b := gimtest.Header()
	b[12] = 0x01
	h, err := ReadHeader(b)
	assert.NoError(t, err)
	assert.Equal(t, FileHeader{Signature: Signature, Version: Version, Style: StylePSP, Option: 1}, h)
	assert.Equal(t, Magic, string(b[:12]))
}
