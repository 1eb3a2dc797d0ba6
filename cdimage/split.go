package cdimage

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
)

// Split extracts every file of the image in dir into out and returns the
// files written.
func Split(dir, out string, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	m, err := Open(dir)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, err
	}

	var files []string
	for i, f := range m.Files() {
		logger.Printf("File %d: %s (start block: %d, num blocks: %d, size: %d)\n", i, f.Name, f.StartBlock, f.NumBlocks, f.Size)

		b := new(bytes.Buffer)
		if err := m.Extract(f, b); err != nil {
			return files, err
		}

		name := filepath.Join(out, f.Name)
		if err := ioutil.WriteFile(name, b.Bytes(), 0644); err != nil {
			return files, err
		}
		files = append(files, name)
	}

	return files, nil
}
