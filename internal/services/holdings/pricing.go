package holdings

import (
	"context"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// priceStrategy attempts one way of pricing a symbol in the reference
// currency. It reports whether it produced a usable price.
type priceStrategy func(ctx context.Context, symbol string) (float64, bool)

// ResolvePrice returns the reference-currency price for a base symbol.
// Strategies are tried in order: direct SYMBOL+USDT ticker, then the
// SYMBOL+BTC market bridged through BTCUSDT. An unresolvable symbol
// prices at 0; this never returns an error.
func (s *Service) ResolvePrice(ctx context.Context, symbol string) float64 {
	if symbol == models.ReferenceCurrency {
		return 1.0
	}

	strategies := []priceStrategy{
		s.directPrice,
		s.bridgedPrice,
	}

	for _, strategy := range strategies {
		if price, ok := strategy(ctx, symbol); ok {
			return price
		}
	}

	s.logger.Debug().Str("symbol", symbol).Msg("Price unresolvable, valuing at zero")
	return 0
}

func (s *Service) directPrice(ctx context.Context, symbol string) (float64, bool) {
	price, err := s.binance.GetTickerPrice(ctx, symbol+models.ReferenceCurrency)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

func (s *Service) bridgedPrice(ctx context.Context, symbol string) (float64, bool) {
	if symbol == models.BridgeAsset {
		return 0, false
	}

	bridgePrice, err := s.binance.GetTickerPrice(ctx, symbol+models.BridgeAsset)
	if err != nil || bridgePrice <= 0 {
		return 0, false
	}

	referencePrice, err := s.binance.GetTickerPrice(ctx, models.BridgeAsset+models.ReferenceCurrency)
	if err != nil || referencePrice <= 0 {
		return 0, false
	}

	return bridgePrice * referencePrice, true
}
