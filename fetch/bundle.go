package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	DefaultManifestTimeout = 30 * time.Second
	DefaultBundleTimeout   = 120 * time.Second
	DefaultBundleMaxSize   = 100 << 20 // 100 MB
)

var ErrVersionNotFound = errors.New("version not in manifest")

// Manifest maps data format versions to the bundles serving them. Each
// version carries a primary URL plus a backup mirror.
type Manifest map[string]ManifestEntry

type ManifestEntry struct {
	Latest string `json:"latest"`
	Backup string `json:"backup"`
}

// Bundle is a downloaded timetable bundle, along with the hash that
// identifies its contents to clients.
type Bundle struct {
	Data []byte
	Hash string
	URL  string
}

// Retrieves and decodes the manifest at the given URL.
func GetManifest(ctx context.Context, d Downloader, manifestURL string) (Manifest, error) {
	body, err := d.Get(ctx, manifestURL, nil, GetOptions{
		Timeout: DefaultManifestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading manifest: %w", err)
	}

	var manifest Manifest
	err = json.Unmarshal(body, &manifest)
	if err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	return manifest, nil
}

// Downloads the bundle the manifest advertises for the given version. The
// primary URL is tried first, and the backup mirror only if the primary
// fails.
func GetBundle(ctx context.Context, d Downloader, manifestURL, version string) (*Bundle, error) {
	manifest, err := GetManifest(ctx, d, manifestURL)
	if err != nil {
		return nil, err
	}

	entry, ok := manifest[version]
	if !ok {
		return nil, fmt.Errorf("%q: %w", version, ErrVersionNotFound)
	}

	// Bundles are published under immutable date-stamped URLs, so caching by
	// URL is safe.
	options := GetOptions{
		Timeout:  DefaultBundleTimeout,
		MaxSize:  DefaultBundleMaxSize,
		Cache:    true,
		CacheTTL: 24 * time.Hour,
	}

	body, primaryErr := d.Get(ctx, entry.Latest, nil, options)
	if primaryErr == nil {
		return &Bundle{Data: body, Hash: bundleHash(entry.Latest), URL: entry.Latest}, nil
	}

	if entry.Backup == "" {
		return nil, fmt.Errorf("downloading bundle: %w", primaryErr)
	}

	body, backupErr := d.Get(ctx, entry.Backup, nil, options)
	if backupErr != nil {
		return nil, errors.Join(
			fmt.Errorf("downloading bundle: %w", primaryErr),
			fmt.Errorf("downloading backup bundle: %w", backupErr),
		)
	}

	return &Bundle{Data: body, Hash: bundleHash(entry.Backup), URL: entry.Backup}, nil
}

// bundleHash derives a client-visible hash from a bundle URL. Bundles are
// published under date-stamped filenames, so the base name identifies the
// contents.
func bundleHash(bundleURL string) string {
	u, err := url.Parse(bundleURL)
	if err != nil {
		return bundleURL
	}
	return strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
}
