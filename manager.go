package vicrail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"vicrail.dev/vicrail/fetch"
	"vicrail.dev/vicrail/parse"
)

const (
	DefaultRefreshInterval = 30 * time.Minute
)

var ErrNoSnapshot = errors.New("no timetable data loaded yet")

// Manager keeps the current Snapshot up to date. It downloads the timetable
// bundle the manifest advertises, parses it, and atomically publishes the
// result. Readers always see a complete snapshot; a failed refresh keeps the
// previous one in place.
type Manager struct {
	ManifestURL     string
	Version         string
	Timezone        string
	RefreshInterval time.Duration
	Downloader      fetch.Downloader

	snapshot atomic.Pointer[Snapshot]
}

// NewManager creates a manager that downloads bundles for the given manifest
// and version. No data is loaded until the first Refresh.
func NewManager(manifestURL, version, timezone string) *Manager {
	return &Manager{
		ManifestURL:     manifestURL,
		Version:         version,
		Timezone:        timezone,
		RefreshInterval: DefaultRefreshInterval,
		Downloader:      fetch.NewMemoryDownloader(),
	}
}

// Snapshot returns the current snapshot, or ErrNoSnapshot if no refresh has
// succeeded yet.
func (m *Manager) Snapshot() (*Snapshot, error) {
	s := m.snapshot.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// Refresh downloads the current bundle and publishes a snapshot built from
// it. When the manifest still points at the bundle already loaded, the
// download and parse are skipped.
func (m *Manager) Refresh(ctx context.Context) error {
	location, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	bundle, err := fetch.GetBundle(ctx, m.Downloader, m.ManifestURL, m.Version)
	if err != nil {
		return fmt.Errorf("fetching bundle: %w", err)
	}

	if current := m.snapshot.Load(); current != nil && current.Network.Hash() == bundle.Hash {
		return nil
	}

	net, timetables, err := parse.ParseBundle(bundle.Data, bundle.Hash)
	if err != nil {
		return fmt.Errorf("parsing bundle: %w", err)
	}

	m.snapshot.Store(&Snapshot{
		Network:    net,
		Timetables: timetables,
		Location:   location,
	})

	return nil
}

// Run refreshes immediately, then keeps refreshing on the configured
// interval until the context is canceled. Refresh failures are logged and
// the last good snapshot stays live.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.Refresh(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(m.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Refresh(ctx); err != nil {
				log.Printf("refreshing timetable data: %v", err)
			}
		}
	}
}
