package archive

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks every entry of the archive in file into a directory named
// after the file within dir. Unless skipCheck is set the trailing check
// entry must be present and is not extracted. It returns the files written.
func Extract(file, dir string, skipCheck bool, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	entries := r.Entries()
	logger.Printf("Number of entries: %d\n", len(entries))

	n := len(entries)
	if !skipCheck {
		if err := r.Check(); err != nil {
			return nil, err
		}
		n--
	}

	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	out := filepath.Join(dir, stem)
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, err
	}

	var files []string
	for i := 0; i < n; i++ {
		e := entries[i]
		logger.Printf("Processing file %d - offset: 0x%X size: 0x%X\n", i, e.Offset, e.Length)

		b, err := ioutil.ReadAll(r.Open(i))
		if err != nil {
			return files, err
		}

		name := filepath.Join(out, fmt.Sprintf("%s.%d.%s", stem, i, Suffix(b)))
		if err := ioutil.WriteFile(name, b, 0644); err != nil {
			return files, err
		}
		logger.Printf("Extracted file %s: %d bytes\n", name, len(b))
		files = append(files, name)
	}

	return files, nil
}
