package repository

import (
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

// parseCache holds the records parsed from one file. Concurrent loads share a
// single parse, and the result is reused until the file's size or
// modification time changes.
type parseCache struct {
	group singleflight.Group

	mu      sync.Mutex
	loaded  bool
	modTime time.Time
	size    int64
	records []domain.Record
}

// load returns the records of path, calling parse only when the cached copy is
// missing or out of date. Callers get their own slice.
func (c *parseCache) load(path string, parse func() ([]domain.Record, error)) ([]domain.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		// let parse report the failure in its own terms
		return parse()
	}

	c.mu.Lock()
	if c.loaded && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		records := c.records
		c.mu.Unlock()
		return slices.Clone(records), nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		records, err := parse()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.loaded = true
		c.modTime = info.ModTime()
		c.size = info.Size()
		c.records = records
		c.mu.Unlock()

		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(v.([]domain.Record)), nil
}
