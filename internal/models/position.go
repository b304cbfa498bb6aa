// Package models defines data structures for Cryptofolio
package models

import "strings"

// ReferenceCurrency is the stable quote currency all valuations resolve to.
const ReferenceCurrency = "USDT"

// BridgeAsset is the intermediate asset used to price symbols that have
// no direct reference-currency market.
const BridgeAsset = "BTC"

// AssetClass identifies which account a position was fetched from.
// It determines the valuation formula and the composite key suffix.
type AssetClass string

const (
	AssetClassSpot    AssetClass = "spot"
	AssetClassMargin  AssetClass = "margin"
	AssetClassFutures AssetClass = "futures"
)

// Suffix returns the composite-key suffix for the class (e.g. "_spot").
func (c AssetClass) Suffix() string {
	return "_" + string(c)
}

// Position is the common valuation interface shared by the three
// class-specific position types.
type Position interface {
	// BaseSymbol returns the base asset identifier (e.g. "BTC"),
	// never carrying a quote-currency suffix.
	BaseSymbol() string

	// Class returns the asset class the position belongs to.
	Class() AssetClass

	// Key returns the composite map key: {symbol}_{class}.
	Key() string

	// Value returns the position's USD valuation.
	Value() float64

	// SetChange24h attaches the 24-hour price change percentage.
	SetChange24h(pct float64)
}

// SpotPosition is a directly owned balance. PriceUSD is 0 when no
// market resolved; AvgBuyPrice, PNL, and the buy timestamps (epoch ms)
// are nil without buy history, and Change24H is nil until enrichment.
type SpotPosition struct {
	Symbol       string   `json:"symbol"`
	Free         float64  `json:"free"`
	Locked       float64  `json:"locked"`
	Total        float64  `json:"total"`
	PriceUSD     float64  `json:"price_usd"`
	ValueUSD     float64  `json:"value_usd"`
	AvgBuyPrice  *float64 `json:"avg_buy_price"`
	PNLUSD       *float64 `json:"pnl_usd"`
	PNLPct       *float64 `json:"pnl_percentage"`
	Change24H    *float64 `json:"change_24h"`
	FirstBuyTime *int64   `json:"first_buy_time"`
	LastBuyTime  *int64   `json:"last_buy_time"`
}

func (p *SpotPosition) BaseSymbol() string       { return p.Symbol }
func (p *SpotPosition) Class() AssetClass        { return AssetClassSpot }
func (p *SpotPosition) Key() string              { return p.Symbol + AssetClassSpot.Suffix() }
func (p *SpotPosition) Value() float64           { return p.ValueUSD }
func (p *SpotPosition) SetChange24h(pct float64) { p.Change24H = &pct }

// MarginPosition is a balance held in the cross-margin account,
// net of borrowed amounts.
type MarginPosition struct {
	Symbol       string   `json:"symbol"`
	NetAsset     float64  `json:"net_asset"`
	Borrowed     float64  `json:"borrowed"`
	PriceUSD     float64  `json:"price_usd"`
	ValueUSD     float64  `json:"value_usd"`
	AvgBuyPrice  *float64 `json:"avg_buy_price"`
	PNLUSD       *float64 `json:"pnl_usd"`
	PNLPct       *float64 `json:"pnl_percentage"`
	Change24H    *float64 `json:"change_24h"`
	FirstBuyTime *int64   `json:"first_buy_time"`
	LastBuyTime  *int64   `json:"last_buy_time"`
}

func (p *MarginPosition) BaseSymbol() string       { return p.Symbol }
func (p *MarginPosition) Class() AssetClass        { return AssetClassMargin }
func (p *MarginPosition) Key() string              { return p.Symbol + AssetClassMargin.Suffix() }
func (p *MarginPosition) Value() float64           { return p.ValueUSD }
func (p *MarginPosition) SetChange24h(pct float64) { p.Change24H = &pct }

// FuturesPosition is a leveraged derivative contract position, signed
// by direction. Entry price and unrealized PNL come from the upstream
// account; no independent cost basis is reconstructed.
type FuturesPosition struct {
	Symbol        string   `json:"symbol"` // base asset, upstream pair suffix stripped
	Amount        float64  `json:"amount"` // signed contract amount
	EntryPrice    float64  `json:"entry_price"`
	Leverage      int      `json:"leverage"`
	PriceUSD      float64  `json:"price_usd"` // mark price from the derivatives market
	ValueUSD      float64  `json:"value_usd"` // abs(amount) * price
	UnrealizedPNL float64  `json:"unrealized_pnl_usd"`
	Change24H     *float64 `json:"change_24h"`
}

func (p *FuturesPosition) BaseSymbol() string       { return p.Symbol }
func (p *FuturesPosition) Class() AssetClass        { return AssetClassFutures }
func (p *FuturesPosition) Key() string              { return p.Symbol + AssetClassFutures.Suffix() }
func (p *FuturesPosition) Value() float64           { return p.ValueUSD }
func (p *FuturesPosition) SetChange24h(pct float64) { p.Change24H = &pct }

// CostBasis is the reconstructed acquisition history for a symbol.
// AvgBuyPrice is nil when no buy executions exist — that is not an error.
type CostBasis struct {
	AvgBuyPrice    *float64 `json:"avg_buy_price"`
	FirstBuyTime   *int64   `json:"first_buy_time"`
	LastBuyTime    *int64   `json:"last_buy_time"`
	TotalQtyBought float64  `json:"total_qty_bought"`
}

// StripBaseSymbol reduces a composite or pair-suffixed key to its base
// symbol: "BTC_spot" -> "BTC", "SOLUSDT_futures" -> "SOL".
func StripBaseSymbol(key string) string {
	base := key
	if idx := strings.Index(base, "_"); idx >= 0 {
		base = base[:idx]
	}
	return strings.TrimSuffix(base, ReferenceCurrency)
}
