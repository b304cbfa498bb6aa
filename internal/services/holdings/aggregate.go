package holdings

import (
	"sort"
	"time"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// Aggregate rolls enriched positions up into a snapshot: total value,
// value-weighted 24h change, and the allocation breakdown. A pass that
// produces no value and no holdings falls back to the demonstration
// snapshot regardless of credential state.
func (s *Service) Aggregate(positions *models.PositionsByClass) *models.PortfolioSnapshot {
	if positions == nil {
		positions = models.NewPositionsByClass()
	}

	all := positions.All()

	var totalValue, weightedChange float64
	for _, pos := range all {
		value := pos.Value()
		totalValue += value

		// A position without an enriched change still carries its full
		// weight, at zero change.
		change := 0.0
		switch p := pos.(type) {
		case *models.SpotPosition:
			if p.Change24H != nil {
				change = *p.Change24H
			}
		case *models.MarginPosition:
			if p.Change24H != nil {
				change = *p.Change24H
			}
		case *models.FuturesPosition:
			if p.Change24H != nil {
				change = *p.Change24H
			}
		}
		weightedChange += value * change
	}

	if totalValue == 0 && len(all) == 0 {
		s.logger.Info().Msg("Aggregation produced nothing, returning demonstration snapshot")
		return demoSnapshot()
	}

	change := 0.0
	if totalValue > 0 {
		change = weightedChange / totalValue
	}

	return &models.PortfolioSnapshot{
		Spot:          positions.Spot,
		Margin:        positions.Margin,
		Futures:       positions.Futures,
		TotalValueUSD: totalValue,
		Change24H:     change,
		HoldingsCount: len(all),
		Allocation:    buildAllocation(all, totalValue),
		GeneratedAt:   time.Now(),
	}
}

// buildAllocation sums position values per base symbol and converts to
// percentages, sorted descending. Zero-value entries are omitted.
func buildAllocation(all []models.Position, totalValue float64) []models.AllocationEntry {
	if totalValue <= 0 {
		return nil
	}

	values := make(map[string]float64)
	for _, pos := range all {
		base := models.StripBaseSymbol(pos.BaseSymbol())
		values[base] += pos.Value()
	}

	entries := make([]models.AllocationEntry, 0, len(values))
	for symbol, value := range values {
		if value <= 0 {
			continue
		}
		entries = append(entries, models.AllocationEntry{
			Symbol:     symbol,
			Percentage: value / totalValue * 100,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].Symbol < entries[j].Symbol
	})

	return entries
}

func demoSnapshot() *models.PortfolioSnapshot {
	positions := models.DemoPositions()
	return &models.PortfolioSnapshot{
		Spot:          positions.Spot,
		Margin:        positions.Margin,
		Futures:       positions.Futures,
		TotalValueUSD: models.DemoTotalValue,
		Change24H:     models.DemoChange24H,
		HoldingsCount: models.DemoHoldingsCount,
		Allocation:    models.DemoAllocation(),
		DemoData:      true,
		GeneratedAt:   time.Now(),
	}
}
