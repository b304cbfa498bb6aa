// Package holdings implements the portfolio aggregation and valuation
// pipeline: fetch positions per asset class, resolve prices, attach
// cost basis and 24h changes, and roll everything up into a snapshot.
package holdings

import (
	"context"
	"fmt"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
	"github.com/bobmcallan/cryptofolio/internal/models"
)

// SnapshotID keys the cached snapshot in the local store.
const SnapshotID = "default"

// Service implements HoldingsService
type Service struct {
	binance interfaces.BinanceClient
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new holdings service. Storage may be nil; the
// snapshot cache is then skipped.
func NewService(binance interfaces.BinanceClient, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		binance: binance,
		storage: storage,
		logger:  logger,
	}
}

// FetchHoldings queries the upstream account endpoints for all three
// position classes. Each class is fetched independently: a failing
// class logs a warning and contributes an empty map. An error is
// returned only when every class fetch failed.
func (s *Service) FetchHoldings(ctx context.Context) (*models.PositionsByClass, error) {
	if !s.binance.HasCredentials() {
		s.logger.Info().Msg("No API credentials configured, using demonstration data")
		return models.DemoPositions(), nil
	}

	positions := models.NewPositionsByClass()
	failures := 0

	if err := s.fetchSpot(ctx, positions); err != nil {
		s.logger.Warn().Err(err).Msg("Spot holdings fetch failed")
		failures++
	}
	if err := s.fetchMargin(ctx, positions); err != nil {
		s.logger.Warn().Err(err).Msg("Margin holdings fetch failed")
		failures++
	}
	if err := s.fetchFutures(ctx, positions); err != nil {
		s.logger.Warn().Err(err).Msg("Futures holdings fetch failed")
		failures++
	}

	if failures == 3 {
		return nil, fmt.Errorf("all holdings fetches failed")
	}

	s.logger.Info().
		Int("spot", len(positions.Spot)).
		Int("margin", len(positions.Margin)).
		Int("futures", len(positions.Futures)).
		Msg("Holdings fetched")

	return positions, nil
}

func (s *Service) fetchSpot(ctx context.Context, positions *models.PositionsByClass) error {
	balances, err := s.binance.GetSpotBalances(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spot balances: %w", err)
	}

	for _, balance := range balances {
		total := balance.Total()
		if total <= 0 {
			continue
		}

		price := s.ResolvePrice(ctx, balance.Asset)
		pos := &models.SpotPosition{
			Symbol:   balance.Asset,
			Free:     balance.Free,
			Locked:   balance.Locked,
			Total:    total,
			PriceUSD: price,
			ValueUSD: total * price,
		}
		basis := s.ComputeCostBasis(ctx, balance.Asset)
		pos.AvgBuyPrice = basis.AvgBuyPrice
		pos.FirstBuyTime = basis.FirstBuyTime
		pos.LastBuyTime = basis.LastBuyTime
		pos.PNLUSD, pos.PNLPct = pnlFromBasis(basis, price, total)

		positions.Spot[pos.Key()] = pos
	}
	return nil
}

func (s *Service) fetchMargin(ctx context.Context, positions *models.PositionsByClass) error {
	assets, err := s.binance.GetMarginAssets(ctx)
	if err != nil {
		return fmt.Errorf("failed to get margin assets: %w", err)
	}

	for _, asset := range assets {
		if asset.NetAsset <= 0 {
			continue
		}

		price := s.ResolvePrice(ctx, asset.Asset)
		pos := &models.MarginPosition{
			Symbol:   asset.Asset,
			NetAsset: asset.NetAsset,
			Borrowed: asset.Borrowed,
			PriceUSD: price,
			ValueUSD: asset.NetAsset * price,
		}
		basis := s.ComputeCostBasis(ctx, asset.Asset)
		pos.AvgBuyPrice = basis.AvgBuyPrice
		pos.FirstBuyTime = basis.FirstBuyTime
		pos.LastBuyTime = basis.LastBuyTime
		pos.PNLUSD, pos.PNLPct = pnlFromBasis(basis, price, asset.NetAsset)

		positions.Margin[pos.Key()] = pos
	}
	return nil
}

func (s *Service) fetchFutures(ctx context.Context, positions *models.PositionsByClass) error {
	upstream, err := s.binance.GetFuturesPositions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get futures positions: %w", err)
	}

	for _, p := range upstream {
		if p.PositionAmt == 0 {
			continue
		}

		// Mark price from the derivatives market; entry price stands
		// in when the ticker is unavailable.
		price, err := s.binance.GetFuturesTickerPrice(ctx, p.Symbol)
		if err != nil || price <= 0 {
			s.logger.Debug().Str("symbol", p.Symbol).Msg("Futures mark price unavailable, using entry price")
			price = p.EntryPrice
		}

		amount := p.PositionAmt
		absAmount := amount
		if absAmount < 0 {
			absAmount = -absAmount
		}

		pos := &models.FuturesPosition{
			Symbol:        models.StripBaseSymbol(p.Symbol),
			Amount:        amount,
			EntryPrice:    p.EntryPrice,
			Leverage:      p.Leverage,
			PriceUSD:      price,
			ValueUSD:      absAmount * price,
			UnrealizedPNL: p.UnrealizedProfit,
		}
		positions.Futures[pos.Key()] = pos
	}
	return nil
}

// pnlFromBasis derives unrealized PNL for a spot or margin position.
// PNL exists only when the average buy price is a positive number and
// the current price resolved.
func pnlFromBasis(basis models.CostBasis, price, qty float64) (*float64, *float64) {
	if basis.AvgBuyPrice == nil || *basis.AvgBuyPrice <= 0 || price <= 0 {
		return nil, nil
	}

	avg := *basis.AvgBuyPrice
	pnl := (price - avg) * qty
	pct := (price - avg) / avg * 100
	return &pnl, &pct
}

// GetHoldings runs the full fetch → enrich → aggregate pass and
// refreshes the snapshot cache.
func (s *Service) GetHoldings(ctx context.Context) (*models.PortfolioSnapshot, error) {
	positions, err := s.FetchHoldings(ctx)
	if err != nil {
		return nil, err
	}

	s.EnrichChanges(ctx, positions)
	snapshot := s.Aggregate(positions)

	if s.storage != nil {
		if err := s.storage.SnapshotStore().SaveSnapshot(ctx, SnapshotID, snapshot); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache snapshot")
		}
	}

	return snapshot, nil
}

// Ensure Service implements HoldingsService
var _ interfaces.HoldingsService = (*Service)(nil)
