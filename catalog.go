package gimtool

import (
	"database/sql"
	"fmt"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a sqlite database recording every conversion.
type Catalog struct {
	db *sql.DB
}

// Entry is a single conversion recorded in the catalog.
type Entry struct {
	Digest string
	Format string
	Order  string
	Width  int
	Height int
	Source string
	Offset int64
	Output string
}

// Digest returns the digest used to identify the GIM file in b.
func Digest(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// NewCatalog opens or creates the catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Concurrent workers share one connection, sqlite allows a single
	// writer anyway
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS picture (id INTEGER PRIMARY KEY NOT NULL, digest TEXT NOT NULL UNIQUE, format TEXT NOT NULL, ordering TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, picture_id INTEGER NOT NULL, source TEXT NOT NULL, byte_offset INTEGER NOT NULL, output TEXT NOT NULL, UNIQUE(source, byte_offset), FOREIGN KEY(picture_id) REFERENCES picture(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the catalog.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) addPicture(e Entry) (int64, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO picture (digest, format, ordering, width, height) VALUES (?, ?, ?, ?, ?)", e.Digest, e.Format, e.Order, e.Width, e.Height); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM picture WHERE digest = ?", e.Digest).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Record adds a conversion, replacing any earlier conversion of the same
// source and offset.
func (c *Catalog) Record(e Entry) error {
	id, err := c.addPicture(e)
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO conversion (picture_id, source, byte_offset, output) VALUES (?, ?, ?, ?)", id, e.Source, e.Offset, e.Output); err != nil {
		return err
	}
	return nil
}

const selectEntries = "SELECT p.digest, p.format, p.ordering, p.width, p.height, c.source, c.byte_offset, c.output FROM conversion AS c JOIN picture AS p ON c.picture_id = p.id"

func scanEntry(s interface{ Scan(...interface{}) error }) (Entry, error) {
	var e Entry
	err := s.Scan(&e.Digest, &e.Format, &e.Order, &e.Width, &e.Height, &e.Source, &e.Offset, &e.Output)
	return e, err
}

// FindByDigest returns the most recent conversion of the GIM file with the
// given digest, or nil if it has never been converted.
func (c *Catalog) FindByDigest(digest string) (*Entry, error) {
	switch e, err := scanEntry(c.db.QueryRow(selectEntries+" WHERE p.digest = ? ORDER BY c.id DESC LIMIT 1", digest)); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}

// History returns every conversion in the order they were recorded.
func (c *Catalog) History() ([]Entry, error) {
	rows, err := c.db.Query(selectEntries + " ORDER BY c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
