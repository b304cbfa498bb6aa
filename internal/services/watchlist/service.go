// Package watchlist manages the tracked-symbol list with quotes
// attached on read.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
	"github.com/bobmcallan/cryptofolio/internal/models"
	"github.com/bobmcallan/cryptofolio/internal/storage"
)

// DefaultName keys the single watchlist in the local store.
const DefaultName = "default"

// Service implements WatchlistService
type Service struct {
	storage interfaces.StorageManager
	binance interfaces.BinanceClient
	logger  *common.Logger
}

// NewService creates a new watchlist service
func NewService(storageManager interfaces.StorageManager, binance interfaces.BinanceClient, logger *common.Logger) *Service {
	return &Service{
		storage: storageManager,
		binance: binance,
		logger:  logger,
	}
}

// GetWatchlist returns the watchlist with current market quotes. A
// symbol whose public ticker fetch fails stays listed, unquoted.
func (s *Service) GetWatchlist(ctx context.Context) ([]models.WatchlistQuote, error) {
	watchlist, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]models.WatchlistQuote, 0, len(watchlist.Symbols))
	for _, symbol := range watchlist.Symbols {
		quote := models.WatchlistQuote{Symbol: symbol}

		stats, err := s.binance.GetTicker24h(ctx, symbol+models.ReferenceCurrency)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Quote unavailable for watchlist symbol")
		} else {
			quote.PriceUSD = stats.LastPrice
			quote.Change24H = stats.PriceChangePercent
			quote.QuoteVolume = stats.QuoteVolume
			quote.Quoted = true
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// AddSymbol adds a symbol to the watchlist. Adding an already tracked
// symbol is a no-op.
func (s *Service) AddSymbol(ctx context.Context, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol is empty")
	}

	watchlist, err := s.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range watchlist.Symbols {
		if existing == symbol {
			return nil
		}
	}

	watchlist.Symbols = append(watchlist.Symbols, symbol)
	if err := s.storage.WatchlistStore().SaveWatchlist(ctx, watchlist); err != nil {
		return err
	}

	s.logger.Info().Str("symbol", symbol).Msg("Symbol added to watchlist")
	return nil
}

// RemoveSymbol removes a symbol from the watchlist.
func (s *Service) RemoveSymbol(ctx context.Context, symbol string) error {
	symbol = normalizeSymbol(symbol)

	watchlist, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := watchlist.Symbols[:0]
	removed := false
	for _, existing := range watchlist.Symbols {
		if existing == symbol {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}

	if !removed {
		return fmt.Errorf("symbol '%s' not on watchlist", symbol)
	}

	watchlist.Symbols = kept
	if err := s.storage.WatchlistStore().SaveWatchlist(ctx, watchlist); err != nil {
		return err
	}

	s.logger.Info().Str("symbol", symbol).Msg("Symbol removed from watchlist")
	return nil
}

// load returns the stored watchlist, or a fresh empty one when none
// exists yet.
func (s *Service) load(ctx context.Context) (*models.Watchlist, error) {
	watchlist, err := s.storage.WatchlistStore().GetWatchlist(ctx, DefaultName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &models.Watchlist{Name: DefaultName}, nil
		}
		return nil, err
	}
	return watchlist, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Ensure Service implements WatchlistService
var _ interfaces.WatchlistService = (*Service)(nil)
