// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists author h-index lookups between runs so repeated
// Semantic Scholar calls stay tractable. Entries expire after a TTL and
// are purged when the cache is opened; failed lookups are stored as
// explicit unknowns so an absent author does not cost two HTTP calls on
// every run.
//
// A cache must never block pipeline progress: a broken backing store
// degrades to a cache that always misses, and write failures are ignored.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTTL is the entry lifetime used when the configuration does not
// set one.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a persistent author-name to h-index store.
type Cache struct {
	db  *sql.DB
	ttl time.Duration

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// Open creates or opens the cache database at path, creates the schema if
// needed, and purges entries older than ttl. On failure the returned error
// describes the cause; callers are expected to log it and continue with
// Discard().
func Open(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, ttl: ttl, now: time.Now}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS hindex (
		author     TEXT PRIMARY KEY,
		hindex     INTEGER NOT NULL,
		known      INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	// Lazy purge: expired entries are treated as if they were never cached.
	cutoff := c.now().Add(-c.ttl).Unix()
	if _, err := db.Exec(`DELETE FROM hindex WHERE updated_at < ?`, cutoff); err != nil {
		db.Close()
		return nil, fmt.Errorf("purging expired cache entries: %w", err)
	}

	return c, nil
}

// Discard returns a cache that always misses and ignores writes. Used when
// Open fails, so the run proceeds as a full cold cache.
func Discard() *Cache {
	return &Cache{}
}

// Get returns the cached h-index for an author. known is false when the
// cached entry records that the lookup previously found nothing; ok is
// false on a miss or when the entry has expired.
func (c *Cache) Get(author string) (hindex int, known bool, ok bool) {
	if c == nil || c.db == nil {
		return 0, false, false
	}

	var h, k int
	var updated int64
	err := c.db.QueryRow(
		`SELECT hindex, known, updated_at FROM hindex WHERE author = ?`, author,
	).Scan(&h, &k, &updated)
	if err != nil {
		return 0, false, false
	}
	if c.now().Sub(time.Unix(updated, 0)) > c.ttl {
		return 0, false, false
	}
	return h, k == 1, true
}

// Set records an author's h-index, or an explicit unknown when known is
// false. Failures are swallowed; a cache write must never abort the run.
func (c *Cache) Set(author string, hindex int, known bool) {
	if c == nil || c.db == nil {
		return
	}

	k := 0
	if known {
		k = 1
	}
	c.db.Exec(
		`INSERT INTO hindex (author, hindex, known, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(author) DO UPDATE SET hindex = excluded.hindex,
		   known = excluded.known, updated_at = excluded.updated_at`,
		author, hindex, k, c.now().Unix(),
	)
}

// Len reports the number of live entries, for run summaries.
func (c *Cache) Len() int {
	if c == nil || c.db == nil {
		return 0
	}
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM hindex`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close releases the database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
