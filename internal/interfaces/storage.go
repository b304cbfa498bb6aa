// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// StorageManager coordinates the local stores.
type StorageManager interface {
	SnapshotStore() SnapshotStore
	WatchlistStore() WatchlistStore
	Close() error
}

// SnapshotStore caches the latest aggregated portfolio snapshot so the
// query layer can answer without re-fetching upstream every time.
type SnapshotStore interface {
	// GetSnapshot retrieves a cached snapshot by ID.
	GetSnapshot(ctx context.Context, id string) (*models.PortfolioSnapshot, error)

	// SaveSnapshot persists a snapshot under the given ID, replacing
	// any previous one.
	SaveSnapshot(ctx context.Context, id string, snapshot *models.PortfolioSnapshot) error
}

// WatchlistStore persists watchlists.
type WatchlistStore interface {
	GetWatchlist(ctx context.Context, name string) (*models.Watchlist, error)
	SaveWatchlist(ctx context.Context, watchlist *models.Watchlist) error
}
