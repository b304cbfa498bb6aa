// Package query answers natural-language questions about the
// portfolio, grounded in the latest aggregated snapshot.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/cryptofolio/internal/clients/gemini"
	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
	"github.com/bobmcallan/cryptofolio/internal/models"
	"github.com/bobmcallan/cryptofolio/internal/services/holdings"
	"github.com/bobmcallan/cryptofolio/internal/signals"
)

// Service implements QueryService
type Service struct {
	holdings interfaces.HoldingsService
	storage  interfaces.StorageManager
	binance  interfaces.BinanceClient
	gemini   interfaces.GeminiClient
	computer *signals.Computer
	logger   *common.Logger
}

// NewService creates a new query service. The Gemini client may be nil;
// answers then come from the deterministic summaries.
func NewService(
	holdingsService interfaces.HoldingsService,
	storage interfaces.StorageManager,
	binance interfaces.BinanceClient,
	geminiClient interfaces.GeminiClient,
	logger *common.Logger,
) *Service {
	return &Service{
		holdings: holdingsService,
		storage:  storage,
		binance:  binance,
		gemini:   geminiClient,
		computer: signals.NewComputer(),
		logger:   logger,
	}
}

// ProcessQuery classifies the question, grounds it in the latest
// snapshot, and answers via the language model when one is configured.
func (s *Service) ProcessQuery(ctx context.Context, text string) (*models.QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("query text is empty")
	}

	category := Classify(text)
	s.logger.Debug().Str("category", string(category)).Msg("Query classified")

	snapshot, err := s.latestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio snapshot: %w", err)
	}

	result := &models.QueryResult{
		Category:       category,
		InvestmentType: investmentType(category),
	}

	if s.gemini != nil {
		prompt := s.buildPrompt(ctx, text, category, snapshot)
		answer, err := s.gemini.GenerateContent(ctx, prompt)
		if err == nil {
			result.Message = answer
			result.Generated = true
			return result, nil
		}
		s.logger.Warn().Err(err).Msg("Language model unavailable, using deterministic summary")
	}

	result.Message = s.summarize(ctx, category, snapshot)
	return result, nil
}

// latestSnapshot reads the cached snapshot, refreshing via a full
// aggregation pass when the cache is cold.
func (s *Service) latestSnapshot(ctx context.Context) (*models.PortfolioSnapshot, error) {
	if s.storage != nil {
		snapshot, err := s.storage.SnapshotStore().GetSnapshot(ctx, holdings.SnapshotID)
		if err == nil {
			return snapshot, nil
		}
	}
	return s.holdings.GetHoldings(ctx)
}

func (s *Service) buildPrompt(ctx context.Context, text string, category models.QueryCategory, snapshot *models.PortfolioSnapshot) string {
	prompt := gemini.BuildPortfolioPrompt(text, snapshot)

	// Technical and returns questions get computed values appended so
	// the model doesn't have to invent them.
	switch category {
	case models.QueryCategoryTechnical:
		if indicators := s.computeIndicators(ctx, snapshot); indicators != "" {
			prompt += "\n\nComputed indicators (daily closes):\n" + indicators
		}
	case models.QueryCategoryReturns:
		if returns := s.computeReturns(ctx, snapshot); returns != "" {
			prompt += "\n\nPrice returns (daily closes):\n" + returns
		}
	}
	return prompt
}

// summarize produces the deterministic category-scoped answer used when
// no language model is configured.
func (s *Service) summarize(ctx context.Context, category models.QueryCategory, snapshot *models.PortfolioSnapshot) string {
	switch category {
	case models.QueryCategorySpot:
		return "Spot Trading Holdings:\n\n" + spotSummary(snapshot)
	case models.QueryCategoryMargin:
		return "Cross Margin Holdings:\n\n" + marginSummary(snapshot)
	case models.QueryCategoryFutures:
		return "Futures Holdings:\n\n" + futuresSummary(snapshot)
	case models.QueryCategoryReturns:
		msg := "Portfolio Returns:\n\n" + returnsSummary(snapshot)
		if returns := s.computeReturns(ctx, snapshot); returns != "" {
			msg += "\nPrice returns (daily closes):\n" + returns
		}
		return msg
	case models.QueryCategoryAllocation:
		return "Asset Allocation:\n\n" + allocationSummary(snapshot)
	case models.QueryCategoryTechnical:
		return "Technical Indicators Analysis:\n\n" + s.computeIndicators(ctx, snapshot)
	case models.QueryCategoryHoldings:
		return "Portfolio Holdings:\n\n" + overviewSummary(snapshot)
	default:
		return overviewSummary(snapshot)
	}
}

func overviewSummary(snapshot *models.PortfolioSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total value: $%.2f across %d positions (24h %+.2f%%).\n",
		snapshot.TotalValueUSD, snapshot.HoldingsCount, snapshot.Change24H)
	if snapshot.DemoData {
		sb.WriteString("This is sample data; configure API credentials for live holdings.\n")
	}
	if s := spotSummary(snapshot); s != "" {
		sb.WriteString("\nSpot:\n" + s)
	}
	if s := marginSummary(snapshot); s != "" {
		sb.WriteString("\nMargin:\n" + s)
	}
	if s := futuresSummary(snapshot); s != "" {
		sb.WriteString("\nFutures:\n" + s)
	}
	return sb.String()
}

func spotSummary(snapshot *models.PortfolioSnapshot) string {
	lines := make([]string, 0, len(snapshot.Spot))
	for _, p := range snapshot.Spot {
		lines = append(lines, fmt.Sprintf("%s: %.8f worth $%.2f", p.Symbol, p.Total, p.ValueUSD))
	}
	return joinSorted(lines)
}

func marginSummary(snapshot *models.PortfolioSnapshot) string {
	lines := make([]string, 0, len(snapshot.Margin))
	for _, p := range snapshot.Margin {
		lines = append(lines, fmt.Sprintf("%s: net %.8f worth $%.2f", p.Symbol, p.NetAsset, p.ValueUSD))
	}
	return joinSorted(lines)
}

func futuresSummary(snapshot *models.PortfolioSnapshot) string {
	lines := make([]string, 0, len(snapshot.Futures))
	for _, p := range snapshot.Futures {
		lines = append(lines, fmt.Sprintf("%s: %.4f contracts at %dx, uPnL $%.2f", p.Symbol, p.Amount, p.Leverage, p.UnrealizedPNL))
	}
	return joinSorted(lines)
}

func returnsSummary(snapshot *models.PortfolioSnapshot) string {
	lines := make([]string, 0, snapshot.HoldingsCount)
	for _, p := range snapshot.Spot {
		if p.PNLUSD != nil && p.PNLPct != nil {
			lines = append(lines, fmt.Sprintf("%s: $%+.2f (%+.2f%%)", p.Symbol, *p.PNLUSD, *p.PNLPct))
		}
	}
	for _, p := range snapshot.Margin {
		if p.PNLUSD != nil && p.PNLPct != nil {
			lines = append(lines, fmt.Sprintf("%s (margin): $%+.2f (%+.2f%%)", p.Symbol, *p.PNLUSD, *p.PNLPct))
		}
	}
	for _, p := range snapshot.Futures {
		lines = append(lines, fmt.Sprintf("%s (futures): $%+.2f unrealized", p.Symbol, p.UnrealizedPNL))
	}
	if len(lines) == 0 {
		return "No positions with return data."
	}
	return joinSorted(lines)
}

func allocationSummary(snapshot *models.PortfolioSnapshot) string {
	if len(snapshot.Allocation) == 0 {
		return "No allocation data."
	}
	var sb strings.Builder
	for _, entry := range snapshot.Allocation {
		fmt.Fprintf(&sb, "%s: %.2f%%\n", entry.Symbol, entry.Percentage)
	}
	return sb.String()
}

// computeIndicators runs RSI/MACD/Bollinger over daily klines for each
// held base symbol. Symbols without kline history are skipped.
func (s *Service) computeIndicators(ctx context.Context, snapshot *models.PortfolioSnapshot) string {
	symbols := snapshotBaseSymbols(snapshot)

	var lines []string
	for _, symbol := range symbols {
		klines, err := s.binance.GetKlines(ctx, symbol+models.ReferenceCurrency, "1d", 30)
		if err != nil || len(klines) == 0 {
			s.logger.Debug().Str("symbol", symbol).Msg("No kline history, skipping indicators")
			continue
		}
		ind := s.computer.Compute(symbol, klines)
		lines = append(lines, fmt.Sprintf("%s: RSI %.1f, MACD %.4f (signal %.4f), Bollinger %.2f / %.2f / %.2f",
			ind.Symbol, ind.RSI, ind.MACD, ind.MACDSignal, ind.BBUpper, ind.BBMiddle, ind.BBLower))
	}
	if len(lines) == 0 {
		return "No indicator data available."
	}
	return joinSorted(lines)
}

// returnPeriods are the lookback windows reported for each held symbol.
var returnPeriods = []string{"24h", "7d", "30d"}

// computeReturns derives price returns over the standard lookback
// windows from daily klines for each held base symbol. Symbols without
// kline history are skipped.
func (s *Service) computeReturns(ctx context.Context, snapshot *models.PortfolioSnapshot) string {
	symbols := snapshotBaseSymbols(snapshot)

	var lines []string
	for _, symbol := range symbols {
		klines, err := s.binance.GetKlines(ctx, symbol+models.ReferenceCurrency, "1d", 30)
		if err != nil || len(klines) == 0 {
			s.logger.Debug().Str("symbol", symbol).Msg("No kline history, skipping returns")
			continue
		}
		parts := make([]string, 0, len(returnPeriods))
		for _, period := range returnPeriods {
			r := s.computer.ComputeReturn(symbol, period, klines)
			parts = append(parts, fmt.Sprintf("%s %+.2f%%", r.Period, r.ReturnPct))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", symbol, strings.Join(parts, ", ")))
	}
	if len(lines) == 0 {
		return ""
	}
	return joinSorted(lines)
}

func snapshotBaseSymbols(snapshot *models.PortfolioSnapshot) []string {
	positions := &models.PositionsByClass{
		Spot:    snapshot.Spot,
		Margin:  snapshot.Margin,
		Futures: snapshot.Futures,
	}
	symbols := positions.BaseSymbols()
	sort.Strings(symbols)
	return symbols
}

func joinSorted(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

// Ensure Service implements QueryService
var _ interfaces.QueryService = (*Service)(nil)
