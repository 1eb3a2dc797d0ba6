package gimtool

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	assert.Len(t, Digest([]byte("MIG.00.1PSP")), 16)
	assert.Equal(t, Digest([]byte{1, 2, 3}), Digest([]byte{1, 2, 3}))
	assert.NotEqual(t, Digest([]byte{1, 2, 3}), Digest([]byte{1, 2, 4}))
}

func TestCatalog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catalog.db")

	c, err := NewCatalog(file)
	require.NoError(t, err)

	e, err := c.FindByDigest("0123456789abcdef")
	assert.NoError(t, err)
	assert.Nil(t, e)

	first := Entry{Digest: "0000000000000001", Format: "INDEX8", Order: "PSPImage", Width: 128, Height: 64, Source: "a.gim", Output: "a.png"}
	second := Entry{Digest: "0000000000000001", Format: "INDEX8", Order: "PSPImage", Width: 128, Height: 64, Source: "b.bin", Offset: 2048, Output: "b_2048.png"}
	third := Entry{Digest: "0000000000000002", Format: "RGBA8888", Order: "Normal", Width: 16, Height: 16, Source: "c.gim", Output: "c.bmp"}

	for _, e := range []Entry{first, second, third} {
		require.NoError(t, c.Record(e))
	}

	e, err = c.FindByDigest("0000000000000001")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, second, *e)

	// Converting the same source again replaces the earlier entry
	first.Output = "out/a.png"
	require.NoError(t, c.Record(first))
	require.NoError(t, c.Close())

	c, err = NewCatalog(file)
	require.NoError(t, err)
	defer c.Close()

	history, err := c.History()
	require.NoError(t, err)
	assert.Equal(t, []Entry{second, third, first}, history)
}
