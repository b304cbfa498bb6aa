// Package signals provides signal computation
package signals

import (
	"time"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// Computer computes technical indicators for a symbol
type Computer struct{}

// NewComputer creates a new signal computer
func NewComputer() *Computer {
	return &Computer{}
}

// Compute calculates the indicator set from kline history. Klines
// must be chronological, oldest first.
func (c *Computer) Compute(symbol string, klines []models.Kline) *models.TechnicalIndicators {
	ind := &models.TechnicalIndicators{
		Symbol:     symbol,
		ComputedAt: time.Now(),
		DataPoints: len(klines),
	}

	if len(klines) == 0 {
		return ind
	}

	ind.RSI = RSI(klines, 14)
	ind.MACD, ind.MACDSignal, ind.MACDHist = MACD(klines, 12, 26, 9)
	ind.BBUpper, ind.BBMiddle, ind.BBLower = Bollinger(klines, 20, 2.0)

	return ind
}

// ComputeReturn calculates the return of a symbol over a named period.
func (c *Computer) ComputeReturn(symbol, period string, klines []models.Kline) models.SymbolReturn {
	days := periodDays(period)
	return models.SymbolReturn{
		Symbol:    symbol,
		Period:    period,
		ReturnPct: PeriodReturn(klines, days),
	}
}

func periodDays(period string) int {
	switch period {
	case "24h", "1d":
		return 1
	case "7d", "1w":
		return 7
	case "30d", "1m":
		return 30
	default:
		return 7
	}
}
