// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// HoldingsService runs the holdings aggregation and valuation pipeline.
type HoldingsService interface {
	// FetchHoldings queries the upstream brokerage for all three
	// position classes. Without credentials it returns the
	// demonstration dataset. A single class failing yields an empty
	// map for that class only; an error is returned only when every
	// class fetch failed outright.
	FetchHoldings(ctx context.Context) (*models.PositionsByClass, error)

	// Aggregate merges enriched positions into a portfolio snapshot.
	Aggregate(positions *models.PositionsByClass) *models.PortfolioSnapshot

	// GetHoldings runs the full fetch → enrich → aggregate pass.
	GetHoldings(ctx context.Context) (*models.PortfolioSnapshot, error)

	// ResolvePrice returns the USD price for a symbol, 0 when
	// unresolvable. Reusable primitive; never returns an error.
	ResolvePrice(ctx context.Context, symbol string) float64

	// ComputeCostBasis reconstructs the volume-weighted average buy
	// price from trade history. Degrades to the zero-history result on
	// upstream failure.
	ComputeCostBasis(ctx context.Context, symbol string) models.CostBasis
}

// QueryService answers natural-language questions about the portfolio.
type QueryService interface {
	// ProcessQuery classifies the question, grounds it in the latest
	// snapshot, and answers via the language model (or a deterministic
	// summary when no model is configured).
	ProcessQuery(ctx context.Context, text string) (*models.QueryResult, error)
}

// WatchlistService manages the tracked-symbol list.
type WatchlistService interface {
	// GetWatchlist returns the watchlist with current quotes attached.
	GetWatchlist(ctx context.Context) ([]models.WatchlistQuote, error)

	// AddSymbol adds a symbol to the watchlist.
	AddSymbol(ctx context.Context, symbol string) error

	// RemoveSymbol removes a symbol from the watchlist.
	RemoveSymbol(ctx context.Context, symbol string) error
}
