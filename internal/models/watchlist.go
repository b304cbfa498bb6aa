package models

import "time"

// Watchlist is a named list of symbols the user tracks outside their
// holdings. Stored locally; quotes are attached on read.
type Watchlist struct {
	Name      string    `badgerhold:"key" json:"name"`
	Symbols   []string  `json:"symbols"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WatchlistQuote is a watchlist symbol with its current market stats.
// Quote fields stay zero when the public ticker fetch fails.
type WatchlistQuote struct {
	Symbol      string  `json:"symbol"`
	PriceUSD    float64 `json:"price_usd"`
	Change24H   float64 `json:"change_24h"`
	QuoteVolume float64 `json:"quote_volume"`
	Quoted      bool    `json:"quoted"` // false when the ticker fetch failed
}
