package holdings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// ComputeCostBasis reconstructs the volume-weighted average buy price
// for a symbol from its reference-currency trade history. Only buy-side
// fills count. Zero buys, or any upstream failure, degrades to the
// empty basis; this never returns an error.
func (s *Service) ComputeCostBasis(ctx context.Context, symbol string) models.CostBasis {
	trades, err := s.binance.GetMyTrades(ctx, symbol+models.ReferenceCurrency)
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Trade history unavailable, skipping cost basis")
		return models.CostBasis{}
	}

	// Accumulate in decimals so long fill histories don't drift.
	totalCost := decimal.Zero
	totalQty := decimal.Zero
	var firstBuy, lastBuy int64

	for _, trade := range trades {
		if !trade.IsBuyer {
			continue
		}

		qty := decimal.NewFromFloat(trade.Qty)
		price := decimal.NewFromFloat(trade.Price)
		totalCost = totalCost.Add(qty.Mul(price))
		totalQty = totalQty.Add(qty)

		if firstBuy == 0 || trade.Time < firstBuy {
			firstBuy = trade.Time
		}
		if trade.Time > lastBuy {
			lastBuy = trade.Time
		}
	}

	if totalQty.IsZero() {
		return models.CostBasis{}
	}

	avg, _ := totalCost.Div(totalQty).Float64()
	qtyBought, _ := totalQty.Float64()

	return models.CostBasis{
		AvgBuyPrice:    &avg,
		FirstBuyTime:   &firstBuy,
		LastBuyTime:    &lastBuy,
		TotalQtyBought: qtyBought,
	}
}
