package query

import (
	"strings"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// categoryKeywords drives the best-match classifier. A category wins
// when more of its keywords appear in the lowercased question than any
// other category's; ties keep the earlier winner, no match is general.
var categoryKeywords = []struct {
	category models.QueryCategory
	keywords []string
}{
	{models.QueryCategoryHoldings, []string{"holdings", "portfolio", "assets", "balance", "hold"}},
	{models.QueryCategorySpot, []string{"spot", "trading"}},
	{models.QueryCategoryMargin, []string{"margin", "cross margin", "borrowed"}},
	{models.QueryCategoryFutures, []string{"futures", "leveraged", "contract", "perpetual"}},
	{models.QueryCategoryReturns, []string{"returns", "performance", "profit", "loss", "pnl"}},
	{models.QueryCategoryTechnical, []string{"technical", "indicators", "rsi", "macd", "bollinger"}},
	{models.QueryCategoryAllocation, []string{"allocation", "distribution", "diversification"}},
}

// Classify maps a natural-language question to a query category.
func Classify(text string) models.QueryCategory {
	text = strings.ToLower(text)

	best := models.QueryCategoryGeneral
	bestScore := 0

	for _, entry := range categoryKeywords {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.category
		}
	}

	return best
}

// investmentType echoes the upstream account label for class-scoped
// categories.
func investmentType(category models.QueryCategory) string {
	switch category {
	case models.QueryCategorySpot:
		return "spot"
	case models.QueryCategoryMargin:
		return "spot_cross_margin"
	case models.QueryCategoryFutures:
		return "futures"
	default:
		return ""
	}
}
