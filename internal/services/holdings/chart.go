package holdings

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// RenderAllocationChart renders a PNG donut of the snapshot's asset
// allocation. Returns raw PNG bytes.
func RenderAllocationChart(snapshot *models.PortfolioSnapshot) ([]byte, error) {
	if snapshot == nil || len(snapshot.Allocation) == 0 {
		return nil, fmt.Errorf("no allocation data to chart")
	}

	values := make([]chart.Value, 0, len(snapshot.Allocation))
	for _, entry := range snapshot.Allocation {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", entry.Symbol, entry.Percentage),
			Value: entry.Percentage,
		})
	}

	graph := chart.DonutChart{
		Title:  "Asset Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}

	return buf.Bytes(), nil
}
