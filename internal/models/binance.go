package models

// Upstream Binance account and market-data shapes, decoded by the
// binance client package. Quantities arrive as decimal strings on the
// wire; the client converts them to floats before they reach here.

// SpotBalance is one asset balance from the spot account endpoint.
type SpotBalance struct {
	Asset  string  `json:"asset"`
	Free   float64 `json:"free"`
	Locked float64 `json:"locked"`
}

// Total returns free + locked.
func (b SpotBalance) Total() float64 {
	return b.Free + b.Locked
}

// MarginAsset is one user asset from the cross-margin account endpoint.
type MarginAsset struct {
	Asset    string  `json:"asset"`
	NetAsset float64 `json:"net_asset"`
	Borrowed float64 `json:"borrowed"`
	Free     float64 `json:"free"`
	Interest float64 `json:"interest"`
}

// FuturesAccountPosition is one position from the futures account
// endpoint. Symbol is the full trading pair (e.g. "SOLUSDT").
type FuturesAccountPosition struct {
	Symbol           string  `json:"symbol"`
	PositionAmt      float64 `json:"position_amt"` // signed
	EntryPrice       float64 `json:"entry_price"`
	UnrealizedProfit float64 `json:"unrealized_profit"`
	Leverage         int     `json:"leverage"`
}

// Trade is one executed fill from the trade-history endpoint.
type Trade struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	Qty     float64 `json:"qty"`
	Time    int64   `json:"time"` // epoch ms
	IsBuyer bool    `json:"is_buyer"`
}

// Ticker24h is the 24-hour rolling statistics for one trading pair.
type Ticker24h struct {
	Symbol             string  `json:"symbol"`
	PriceChange        float64 `json:"price_change"`
	PriceChangePercent float64 `json:"price_change_percent"`
	LastPrice          float64 `json:"last_price"`
	Volume             float64 `json:"volume"`
	QuoteVolume        float64 `json:"quote_volume"`
}

// Kline is one candlestick bar.
type Kline struct {
	OpenTime  int64   `json:"open_time"` // epoch ms
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	CloseTime int64   `json:"close_time"`
}
