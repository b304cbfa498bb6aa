package models

// QueryCategory classifies a natural-language portfolio question.
type QueryCategory string

const (
	QueryCategoryGeneral    QueryCategory = "general"
	QueryCategoryHoldings   QueryCategory = "holdings"
	QueryCategorySpot       QueryCategory = "spot"
	QueryCategoryMargin     QueryCategory = "margin"
	QueryCategoryFutures    QueryCategory = "futures"
	QueryCategoryReturns    QueryCategory = "returns"
	QueryCategoryAllocation QueryCategory = "allocation"
	QueryCategoryTechnical  QueryCategory = "technical"
)

// QueryResult is the answer to a portfolio query.
type QueryResult struct {
	Category QueryCategory `json:"category"`
	Message  string        `json:"message"`
	// InvestmentType echoes the asset class for class-scoped queries.
	InvestmentType string `json:"investment_type,omitempty"`
	// Generated reports whether the answer came from the language model
	// (true) or the deterministic fallback summary (false).
	Generated bool `json:"generated"`
}
