package holdings

import (
	"context"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// EnrichChanges attaches the 24-hour price change percentage to every
// position. One public ticker call is made per distinct base symbol;
// a failing symbol is skipped and its positions keep a nil change.
func (s *Service) EnrichChanges(ctx context.Context, positions *models.PositionsByClass) {
	for _, symbol := range positions.BaseSymbols() {
		stats, err := s.binance.GetTicker24h(ctx, symbol+models.ReferenceCurrency)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("24h stats unavailable, skipping")
			continue
		}

		for _, pos := range positions.All() {
			if models.StripBaseSymbol(pos.BaseSymbol()) == symbol {
				pos.SetChange24h(stats.PriceChangePercent)
			}
		}
	}
}
