package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/models"
)

type watchlistStorage struct {
	store  *Store
	logger *common.Logger
}

// NewWatchlistStorage creates a WatchlistStore backed by BadgerHold.
func NewWatchlistStorage(store *Store, logger *common.Logger) *watchlistStorage {
	return &watchlistStorage{store: store, logger: logger}
}

func (s *watchlistStorage) GetWatchlist(_ context.Context, name string) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	err := s.store.db.Get(name, &watchlist)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("watchlist '%s': %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watchlist '%s': %w", name, err)
	}
	return &watchlist, nil
}

func (s *watchlistStorage) SaveWatchlist(_ context.Context, watchlist *models.Watchlist) error {
	watchlist.UpdatedAt = time.Now()

	if err := s.store.db.Upsert(watchlist.Name, watchlist); err != nil {
		return fmt.Errorf("failed to save watchlist '%s': %w", watchlist.Name, err)
	}
	s.logger.Debug().Str("watchlist", watchlist.Name).Int("symbols", len(watchlist.Symbols)).Msg("Watchlist saved")
	return nil
}
