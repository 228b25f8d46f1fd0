package ringtext

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"

	"github.com/bodgit/ringtext/rgb565"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pelletier/go-toml/v2"
)

// Cache stores rendered rasters in an SQLite database so identical text
// rendered with an identical configuration is only rendered once.
type Cache struct {
	db *sql.DB
}

// NewCache opens, creating if necessary, the cache database in file
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, frame BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Key returns the cache key for lines rendered with cfg
func Key(cfg Config, lines []string) (string, error) {
	h := sha1.New()
	if err := toml.NewEncoder(h).Encode(cfg); err != nil {
		return "", err
	}
	for _, line := range lines {
		if _, err := io.WriteString(h, line); err != nil {
			return "", err
		}
		if _, err := h.Write([]byte{0}); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Get returns the raster stored under key, or nil if there isn't one
func (c *Cache) Get(key string) (*rgb565.Image, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT frame FROM frame WHERE sha1 = ?", key).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		m := new(rgb565.Image)
		if err := m.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, err
	}
}

// Put stores m under key, replacing anything already there
func (c *Cache) Put(key string, m *rgb565.Image) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO frame (sha1, width, height, frame) VALUES (?, ?, ?, ?)", key, m.Bounds().Dx(), m.Bounds().Dy(), b); err != nil {
		return err
	}
	return nil
}

// Len returns the number of rasters in the cache
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM frame").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}
