package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryDownloader keeps fetched files in memory, so a long-running server
// re-reads its current bundle without hitting the network on every refresh
// check. Entries whose TTL has lapsed are evicted rather than kept around,
// since a superseded bundle is tens of megabytes of dead weight.
type MemoryDownloader struct {
	mutex   sync.Mutex
	entries map[string]memoryEntry

	// TimeNow is swappable for tests.
	TimeNow func() time.Time
}

type memoryEntry struct {
	body    []byte
	staleAt time.Time
}

func NewMemoryDownloader() *MemoryDownloader {
	return &MemoryDownloader{
		entries: make(map[string]memoryEntry),
		TimeNow: time.Now,
	}
}

func (d *MemoryDownloader) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options GetOptions,
) ([]byte, error) {
	if !options.Cache {
		return HTTPGet(ctx, url, headers, options)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	now := d.TimeNow()
	if entry, ok := d.entries[url]; ok && entry.staleAt.After(now) {
		return entry.body, nil
	}

	body, err := HTTPGet(ctx, url, headers, options)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}

	d.entries[url] = memoryEntry{
		body:    body,
		staleAt: now.Add(options.CacheTTL),
	}
	d.evictStale(now)

	return body, nil
}

// evictStale drops lapsed entries. Callers must hold the mutex.
func (d *MemoryDownloader) evictStale(now time.Time) {
	for url, entry := range d.entries {
		if !entry.staleAt.After(now) {
			delete(d.entries, url)
		}
	}
}
