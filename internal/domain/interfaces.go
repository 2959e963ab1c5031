package domain

import (
	"context"
	"time"
)

// KeyValueStore persists small values under string keys.
// Each Set fully overwrites the previous value for that key.
//
//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/dailyblessing/internal/domain KeyValueStore,CatalogLoader,FavoriteStore,ThemeStore
type KeyValueStore interface {
	// Get returns the stored value, or ErrNotFound if the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying storage
	Close() error
}

// CatalogLoader produces the quote catalog for a session.
// Load never fails: on any problem it returns a one-record fallback catalog.
type CatalogLoader interface {
	Load(ctx context.Context) Catalog
}

// FavoriteStore persists the favorite set
type FavoriteStore interface {
	// Load returns the persisted set, or an empty set if nothing usable is stored
	Load(ctx context.Context) FavoriteSet

	// Save overwrites the persisted set
	Save(ctx context.Context, set FavoriteSet) error
}

// ThemeStore persists the selected theme
type ThemeStore interface {
	// Load returns the persisted selection, or ThemeLight if missing or invalid
	Load(ctx context.Context) ThemeSelection

	// Save overwrites the persisted selection
	Save(ctx context.Context, sel ThemeSelection) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetCatalogPath returns the quote file to load, or "" for the bundled catalog
	GetCatalogPath() string

	// GetStoreDir returns the directory holding the preferences database
	GetStoreDir() string

	// GetAutoScrollInterval returns the delay between automatic advances
	GetAutoScrollInterval() time.Duration

	// RemoteEnabled reports whether the session-bus control surface is exported
	RemoteEnabled() bool

	// GetBusName returns the well-known session-bus name to request
	GetBusName() string
}
