package storage

import (
	"fmt"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
)

// Manager implements interfaces.StorageManager over a single
// BadgerHold database.
type Manager struct {
	store      *Store
	snapshots  *snapshotStorage
	watchlists *watchlistStorage
	logger     *common.Logger
}

// NewManager opens the database and wires the per-domain stores.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	store, err := NewStore(logger, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", path).Msg("Storage manager initialized")

	return &Manager{
		store:      store,
		snapshots:  NewSnapshotStorage(store, logger),
		watchlists: NewWatchlistStorage(store, logger),
		logger:     logger,
	}, nil
}

func (m *Manager) SnapshotStore() interfaces.SnapshotStore {
	return m.snapshots
}

func (m *Manager) WatchlistStore() interfaces.WatchlistStore {
	return m.watchlists
}

func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
