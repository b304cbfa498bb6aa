package models

import "time"

// PositionsByClass groups positions per asset class, each map keyed by
// the composite {symbol}_{class} key. A symbol appears at most once per
// class within one aggregation pass.
type PositionsByClass struct {
	Spot    map[string]*SpotPosition    `json:"spot"`
	Margin  map[string]*MarginPosition  `json:"margin"`
	Futures map[string]*FuturesPosition `json:"futures"`
}

// NewPositionsByClass returns an empty, fully initialized position set.
func NewPositionsByClass() *PositionsByClass {
	return &PositionsByClass{
		Spot:    make(map[string]*SpotPosition),
		Margin:  make(map[string]*MarginPosition),
		Futures: make(map[string]*FuturesPosition),
	}
}

// All returns every position across the three classes.
func (p *PositionsByClass) All() []Position {
	out := make([]Position, 0, len(p.Spot)+len(p.Margin)+len(p.Futures))
	for _, pos := range p.Spot {
		out = append(out, pos)
	}
	for _, pos := range p.Margin {
		out = append(out, pos)
	}
	for _, pos := range p.Futures {
		out = append(out, pos)
	}
	return out
}

// BaseSymbols returns the distinct set of base symbols held across all
// classes, excluding the reference currency itself.
func (p *PositionsByClass) BaseSymbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, pos := range p.All() {
		base := StripBaseSymbol(pos.BaseSymbol())
		if base == "" || base == ReferenceCurrency || seen[base] {
			continue
		}
		seen[base] = true
		symbols = append(symbols, base)
	}
	return symbols
}

// Empty reports whether no positions exist in any class.
func (p *PositionsByClass) Empty() bool {
	return len(p.Spot) == 0 && len(p.Margin) == 0 && len(p.Futures) == 0
}

// AllocationEntry is one asset's share of total portfolio value.
type AllocationEntry struct {
	Symbol     string  `json:"asset"`
	Percentage float64 `json:"percentage"`
}

// PortfolioSnapshot is the result of one aggregation pass. It is
// constructed fresh on every fetch and never mutated in place.
type PortfolioSnapshot struct {
	Spot          map[string]*SpotPosition    `json:"spot_holdings"`
	Margin        map[string]*MarginPosition  `json:"margin_holdings"`
	Futures       map[string]*FuturesPosition `json:"futures_holdings"`
	TotalValueUSD float64                     `json:"total_value"`
	Change24H     float64                     `json:"change_24h"` // value-weighted
	HoldingsCount int                         `json:"holdings_count"`
	Allocation    []AllocationEntry           `json:"asset_allocation"`
	DemoData      bool                        `json:"demo_data,omitempty"`
	GeneratedAt   time.Time                   `json:"generated_at"`
}

// SnapshotRecord wraps a snapshot for persistence in the local store.
type SnapshotRecord struct {
	ID        string             `badgerhold:"key"`
	Snapshot  *PortfolioSnapshot `json:"snapshot"`
	CreatedAt time.Time          `json:"created_at"`
}
