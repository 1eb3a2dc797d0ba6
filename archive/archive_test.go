package archive

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(entries ...[]byte) []byte {
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		binary.Write(b, binary.LittleEndian, uint32(len(e)))
	}
	for _, e := range entries {
		for b.Len()%16 != 0 {
			b.WriteByte(0)
		}
		b.Write(e)
	}
	return b.Bytes()
}

func TestNewReader(t *testing.T) {
	b := build([]byte("MIG.00.1PSP\x00data"), []byte("VAGp"), []byte(CheckSignature+"xx"))

	r, err := NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Offset: 16, Length: 16},
		{Offset: 32, Length: 4},
		{Offset: 48, Length: 10},
	}, r.Entries())

	data, err := ioutil.ReadAll(r.Open(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("VAGp"), data)

	assert.NoError(t, r.Check())
}

func TestNewReaderUnalignedIndex(t *testing.T) {
	// 4 + 4*4 = 20 bytes of index so the first entry is at 32
	b := build([]byte{1}, []byte{2}, []byte{3}, []byte{4})
	r, err := NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	assert.Equal(t, int64(32), r.Entries()[0].Offset)
	assert.Equal(t, int64(48), r.Entries()[1].Offset)
	assert.Error(t, r.Check())
}

func TestNewReaderErrors(t *testing.T) {
	tables := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"zero entries", []byte{0, 0, 0, 0}},
		{"too many entries", []byte{0x11, 0x27, 0, 0}},
		{"truncated lengths", []byte{2, 0, 0, 0, 1, 0, 0, 0}},
		{"entry past end", build([]byte("data"))[:19]},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(table.b), int64(len(table.b)))
			assert.Error(t, err)
		})
	}
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "gim", Suffix([]byte("MIG.00.1PSP")))
	assert.Equal(t, "mid", Suffix([]byte("MThd")))
	assert.Equal(t, "phd", Suffix([]byte("PPHD")))
	assert.Equal(t, "psmf", Suffix([]byte("PSMF0014")))
	assert.Equal(t, "vag", Suffix([]byte("VAGp")))
	assert.Equal(t, "bin", Suffix([]byte("MI")))
	assert.Equal(t, "bin", Suffix(nil))
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "DATA.BIN")
	require.NoError(t, ioutil.WriteFile(file, build([]byte("MIG.texture"), []byte("other"), []byte(CheckSignature)), 0644))

	out := filepath.Join(dir, "out")
	files, err := Extract(file, out, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "DATA", "DATA.0.gim"),
		filepath.Join(out, "DATA", "DATA.1.bin"),
	}, files)

	b, err := ioutil.ReadFile(files[1])
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), b)

	files, err = Extract(file, out, true, nil)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestExtractMissingCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "DATA.BIN")
	require.NoError(t, ioutil.WriteFile(file, build([]byte("one"), []byte("two")), 0644))

	files, err := Extract(file, dir, false, nil)
	assert.Equal(t, errNoCheck, err)
	assert.Empty(t, files)
	assert.NoDirExists(t, filepath.Join(dir, "DATA"))
}
