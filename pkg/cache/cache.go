// Package cache provides the storage layer used to memoize import
// extraction and rendered artifacts.
//
// Backends implementing [Cache]:
//
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: shared cache for servers and CI runners
//   - [MemoryCache]: bounded in-process LRU
//   - [NullCache]: disables caching
//
// [Tiered] layers a fast cache over a slower one; the HTTP server puts a
// [MemoryCache] in front of the file or Redis cache.
//
// Keys are produced by a [Keyer] so that backends never need to know what
// they store. Layouts are never cached; they are recomputed on every run.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	// ImportsTTL bounds how long extracted specifiers are kept. Entries are
	// keyed by content hash, so staleness is only a disk-usage concern.
	ImportsTTL = 30 * 24 * time.Hour

	// ArtifactTTL bounds how long rendered outputs are kept.
	ArtifactTTL = 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ImportsKey keys the specifiers extracted from one file's content.
	ImportsKey(contentHash, sourceType string) string
	// ArtifactKey keys a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string   `json:"format"`
	Scale       float64  `json:"scale,omitempty"`
	HideNames   bool     `json:"hide_names,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Selected    []string `json:"selected,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImportsKey returns "imports:<sha256>" over the content hash and source type.
func (DefaultKeyer) ImportsKey(contentHash, sourceType string) string {
	return hashKey("imports", contentHash, sourceType)
}

// ArtifactKey returns "artifact:<sha256>" over the layout hash and options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
