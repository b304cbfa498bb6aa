package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// generateKlines builds chronological klines from a close series.
func generateKlines(closes []float64) []models.Kline {
	klines := make([]models.Kline, len(closes))
	for i, close := range closes {
		klines[i] = models.Kline{
			OpenTime:  int64(1609459200000 + i*86400000),
			CloseTime: int64(1609459200000 + (i+1)*86400000 - 1),
			Open:      close,
			High:      close * 1.02,
			Low:       close * 0.98,
			Close:     close,
			Volume:    1000,
		}
	}
	return klines
}

// generateTrendKlines builds a linear trend, oldest first.
func generateTrendKlines(start, step float64, count int) []models.Kline {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return generateKlines(closes)
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		klines   []models.Kline
		period   int
		expected float64
	}{
		{
			name:     "simple 3-day SMA",
			klines:   generateKlines([]float64{10, 20, 30}),
			period:   3,
			expected: 20.0,
		},
		{
			name:     "uses most recent window",
			klines:   generateKlines([]float64{100, 10, 20, 30}),
			period:   3,
			expected: 20.0,
		},
		{
			name:     "insufficient data",
			klines:   generateKlines([]float64{10, 20}),
			period:   5,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SMA(tt.klines, tt.period)
			assert.InDelta(t, tt.expected, result, 0.01)
		})
	}
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		klines []models.Kline
		period int
		minRSI float64
		maxRSI float64
	}{
		{
			name:   "uptrend should have high RSI",
			klines: generateTrendKlines(50, 1.0, 20),
			period: 14,
			minRSI: 60,
			maxRSI: 100,
		},
		{
			name:   "downtrend should have low RSI",
			klines: generateTrendKlines(100, -1.0, 20),
			period: 14,
			minRSI: 0,
			maxRSI: 40,
		},
		{
			name:   "insufficient data returns neutral",
			klines: generateKlines([]float64{10, 20}),
			period: 14,
			minRSI: 50,
			maxRSI: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RSI(tt.klines, tt.period)
			assert.GreaterOrEqual(t, result, tt.minRSI)
			assert.LessOrEqual(t, result, tt.maxRSI)
		})
	}
}

func TestEMA_ConvergesToConstantSeries(t *testing.T) {
	klines := generateKlines([]float64{42, 42, 42, 42, 42, 42, 42, 42, 42, 42})
	assert.InDelta(t, 42.0, EMA(klines, 5), 0.01)
}

func TestEMA_WeightsRecentCloses(t *testing.T) {
	rising := generateTrendKlines(10, 1.0, 30)
	ema := EMA(rising, 10)
	sma := SMA(rising, 10)
	// In an uptrend the EMA sits above the same-period SMA.
	assert.Greater(t, ema, sma)
}

func TestMACD(t *testing.T) {
	t.Run("uptrend produces positive MACD", func(t *testing.T) {
		klines := generateTrendKlines(100, 2.0, 60)
		macd, signal, hist := MACD(klines, 12, 26, 9)
		assert.Greater(t, macd, 0.0)
		assert.Greater(t, signal, 0.0)
		assert.InDelta(t, macd-signal, hist, 0.0001)
	})

	t.Run("insufficient data", func(t *testing.T) {
		klines := generateKlines([]float64{10, 20, 30})
		macd, signal, hist := MACD(klines, 12, 26, 9)
		assert.Zero(t, macd)
		assert.Zero(t, signal)
		assert.Zero(t, hist)
	})
}

func TestBollinger(t *testing.T) {
	t.Run("constant series collapses bands", func(t *testing.T) {
		klines := generateKlines(make([]float64, 25))
		for i := range klines {
			klines[i].Close = 100
		}
		upper, middle, lower := Bollinger(klines, 20, 2.0)
		assert.InDelta(t, 100.0, upper, 0.01)
		assert.InDelta(t, 100.0, middle, 0.01)
		assert.InDelta(t, 100.0, lower, 0.01)
	})

	t.Run("bands bracket the middle", func(t *testing.T) {
		klines := generateTrendKlines(50, 1.5, 30)
		upper, middle, lower := Bollinger(klines, 20, 2.0)
		assert.Greater(t, upper, middle)
		assert.Less(t, lower, middle)
	})

	t.Run("insufficient data", func(t *testing.T) {
		upper, middle, lower := Bollinger(generateKlines([]float64{10}), 20, 2.0)
		assert.Zero(t, upper)
		assert.Zero(t, middle)
		assert.Zero(t, lower)
	})
}

func TestPeriodReturn(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		days     int
		expected float64
	}{
		{
			name:     "one-day gain",
			closes:   []float64{100, 110},
			days:     1,
			expected: 10.0,
		},
		{
			name:     "seven-day loss",
			closes:   []float64{200, 190, 185, 180, 175, 170, 165, 160},
			days:     7,
			expected: -20.0,
		},
		{
			name:     "window longer than history uses oldest close",
			closes:   []float64{100, 150},
			days:     30,
			expected: 50.0,
		},
		{
			name:     "single close",
			closes:   []float64{100},
			days:     7,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PeriodReturn(generateKlines(tt.closes), tt.days)
			assert.InDelta(t, tt.expected, result, 0.01)
		})
	}
}

func TestComputer_Compute(t *testing.T) {
	computer := NewComputer()

	t.Run("full history", func(t *testing.T) {
		klines := generateTrendKlines(100, 1.0, 40)
		ind := computer.Compute("BTCUSDT", klines)

		assert.Equal(t, "BTCUSDT", ind.Symbol)
		assert.Equal(t, 40, ind.DataPoints)
		assert.Greater(t, ind.RSI, 50.0)
		assert.Greater(t, ind.BBUpper, ind.BBLower)
		assert.False(t, ind.ComputedAt.IsZero())
	})

	t.Run("empty history", func(t *testing.T) {
		ind := computer.Compute("ETHUSDT", nil)
		assert.Equal(t, 0, ind.DataPoints)
		assert.Zero(t, ind.RSI)
	})
}
