package convert

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// Cache stores encoded textures in a sqlite database. Textures are zstd
// compressed at rest.
type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenCache opens or creates the cache database in file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, txi BLOB NOT NULL, UNIQUE(sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Get returns the texture stored for the source SHA-1 and options, or nil if
// there isn't one.
func (c *Cache) Get(sha, options string) ([]byte, error) {
	var blob []byte
	switch err := c.db.QueryRow("SELECT txi FROM texture WHERE sha1 = ? AND options = ?", sha, options).Scan(&blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := c.dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		return b, nil
	default:
		return nil, err
	}
}

// Put stores the texture for the source SHA-1 and options, replacing any
// existing one.
func (c *Cache) Put(sha, options string, b []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO texture (sha1, options, txi) VALUES (?, ?, ?)", sha, options, c.enc.EncodeAll(b, nil)); err != nil {
		return err
	}
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}
