// Package signals provides technical indicator calculations
package signals

import (
	"math"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// Klines arrive oldest-first; every indicator here assumes
// chronological order with the most recent close last.

// SMA calculates Simple Moving Average over the most recent period
func SMA(klines []models.Kline, period int) float64 {
	if period <= 0 || len(klines) < period {
		return 0
	}

	sum := 0.0
	for i := len(klines) - period; i < len(klines); i++ {
		sum += klines[i].Close
	}
	return sum / float64(period)
}

// EMA calculates Exponential Moving Average for the given period
func EMA(klines []models.Kline, period int) float64 {
	if period <= 0 || len(klines) < period {
		return 0
	}

	multiplier := 2.0 / float64(period+1)
	ema := SMA(klines[:period], period) // Seed with SMA of the oldest window

	for i := period; i < len(klines); i++ {
		ema = (klines[i].Close-ema)*multiplier + ema
	}

	return ema
}

// RSI calculates Relative Strength Index
func RSI(klines []models.Kline, period int) float64 {
	if period <= 0 || len(klines) < period+1 {
		return 50 // Neutral default
	}

	var gains, losses float64
	start := len(klines) - period
	for i := start; i < len(klines); i++ {
		change := klines[i].Close - klines[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD calculates Moving Average Convergence Divergence.
// Returns MACD line, signal line, and histogram.
func MACD(klines []models.Kline, fastPeriod, slowPeriod, signalPeriod int) (float64, float64, float64) {
	if len(klines) < slowPeriod {
		return 0, 0, 0
	}

	// Walk the series computing the MACD line at each step so the
	// signal line can be a true EMA of the MACD history.
	macdSeries := make([]float64, 0, len(klines)-slowPeriod+1)
	for i := slowPeriod; i <= len(klines); i++ {
		window := klines[:i]
		macdSeries = append(macdSeries, EMA(window, fastPeriod)-EMA(window, slowPeriod))
	}

	macdLine := macdSeries[len(macdSeries)-1]
	signalLine := emaOfSeries(macdSeries, signalPeriod)
	histogram := macdLine - signalLine

	return macdLine, signalLine, histogram
}

func emaOfSeries(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || len(values) < period {
		// Not enough points for a seeded EMA; fall back to the mean.
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}

	multiplier := 2.0 / float64(period+1)
	ema := 0.0
	for i := 0; i < period; i++ {
		ema += values[i]
	}
	ema /= float64(period)

	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
	}
	return ema
}

// Bollinger calculates Bollinger Bands over the most recent period.
// Returns upper band, middle band (SMA), and lower band.
func Bollinger(klines []models.Kline, period int, width float64) (float64, float64, float64) {
	if period <= 0 || len(klines) < period {
		return 0, 0, 0
	}

	middle := SMA(klines, period)

	variance := 0.0
	for i := len(klines) - period; i < len(klines); i++ {
		diff := klines[i].Close - middle
		variance += diff * diff
	}
	stddev := math.Sqrt(variance / float64(period))

	return middle + width*stddev, middle, middle - width*stddev
}

// PeriodReturn calculates the percentage return over the last n closes.
// With fewer than n+1 klines the full available history is used.
func PeriodReturn(klines []models.Kline, n int) float64 {
	if len(klines) < 2 || n < 1 {
		return 0
	}

	start := len(klines) - 1 - n
	if start < 0 {
		start = 0
	}

	base := klines[start].Close
	if base == 0 {
		return 0
	}
	return (klines[len(klines)-1].Close - base) / base * 100
}
