package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/models"
)

type snapshotStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSnapshotStorage creates a SnapshotStore backed by BadgerHold.
func NewSnapshotStorage(store *Store, logger *common.Logger) *snapshotStorage {
	return &snapshotStorage{store: store, logger: logger}
}

func (s *snapshotStorage) GetSnapshot(_ context.Context, id string) (*models.PortfolioSnapshot, error) {
	var record models.SnapshotRecord
	err := s.store.db.Get(id, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("snapshot '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get snapshot '%s': %w", id, err)
	}
	return record.Snapshot, nil
}

func (s *snapshotStorage) SaveSnapshot(_ context.Context, id string, snapshot *models.PortfolioSnapshot) error {
	record := models.SnapshotRecord{
		ID:        id,
		Snapshot:  snapshot,
		CreatedAt: time.Now(),
	}
	if err := s.store.db.Upsert(id, record); err != nil {
		return fmt.Errorf("failed to save snapshot '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Float64("total_value", snapshot.TotalValueUSD).Msg("Snapshot saved")
	return nil
}
