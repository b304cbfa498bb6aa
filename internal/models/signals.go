package models

import "time"

// TechnicalIndicators holds the indicator values computed from a
// symbol's daily kline closes.
type TechnicalIndicators struct {
	Symbol     string    `json:"symbol"`
	RSI        float64   `json:"rsi"`
	MACD       float64   `json:"macd"`
	MACDSignal float64   `json:"macd_signal"`
	MACDHist   float64   `json:"macd_histogram"`
	BBUpper    float64   `json:"bb_upper"`
	BBMiddle   float64   `json:"bb_middle"`
	BBLower    float64   `json:"bb_lower"`
	ComputedAt time.Time `json:"computed_at"`
	DataPoints int       `json:"data_points"`
}

// SymbolReturn is a symbol's price return over a lookback window,
// first close vs. last close.
type SymbolReturn struct {
	Symbol    string  `json:"symbol"`
	Period    string  `json:"period"` // "24h", "7d", "30d"
	ReturnPct float64 `json:"return_pct"`
}
