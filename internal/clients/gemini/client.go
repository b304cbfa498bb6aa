// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
	"github.com/bobmcallan/cryptofolio/internal/models"
)

const (
	DefaultModel = "gemini-2.0-flash"
)

// Client implements the GeminiClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates AI content from a prompt
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// BuildPortfolioPrompt renders a snapshot into a grounded analysis
// prompt. The model is instructed to answer only from the supplied
// figures so responses stay consistent with the live portfolio.
func BuildPortfolioPrompt(question string, snapshot *models.PortfolioSnapshot) string {
	var sb strings.Builder

	sb.WriteString("You are a cryptocurrency portfolio assistant. Answer the question using only the portfolio data below.\n\n")
	sb.WriteString(fmt.Sprintf("Total portfolio value: $%.2f\n", snapshot.TotalValueUSD))
	sb.WriteString(fmt.Sprintf("24h change: %.2f%%\n", snapshot.Change24H))
	sb.WriteString(fmt.Sprintf("Holdings: %d\n", snapshot.HoldingsCount))
	if snapshot.DemoData {
		sb.WriteString("Note: this is sample data, not a live account.\n")
	}

	writePositions(&sb, "Spot", spotLines(snapshot))
	writePositions(&sb, "Margin", marginLines(snapshot))
	writePositions(&sb, "Futures", futuresLines(snapshot))

	if len(snapshot.Allocation) > 0 {
		sb.WriteString("\nAllocation:\n")
		for _, entry := range snapshot.Allocation {
			sb.WriteString(fmt.Sprintf("- %s: %.2f%%\n", entry.Symbol, entry.Percentage))
		}
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer concisely with concrete figures from the data.")

	return sb.String()
}

func writePositions(sb *strings.Builder, label string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sort.Strings(lines)
	sb.WriteString("\n" + label + " positions:\n")
	for _, line := range lines {
		sb.WriteString(line)
	}
}

func spotLines(snapshot *models.PortfolioSnapshot) []string {
	lines := make([]string, 0, len(snapshot.Spot))
	for _, p := range snapshot.Spot {
		line := fmt.Sprintf("- %s: %.8f @ $%.2f = $%.2f", p.Symbol, p.Total, p.PriceUSD, p.ValueUSD)
		if p.AvgBuyPrice != nil {
			line += fmt.Sprintf(" (avg buy $%.2f", *p.AvgBuyPrice)
			// PNL can be absent even with a cost basis, e.g. an
			// unpriced symbol.
			if p.PNLUSD != nil && p.PNLPct != nil {
				line += fmt.Sprintf(", PnL $%.2f / %.2f%%", *p.PNLUSD, *p.PNLPct)
			}
			line += ")"
		}
		lines = append(lines, line+"\n")
	}
	return lines
}

func marginLines(snapshot *models.PortfolioSnapshot) []string {
	lines := make([]string, 0, len(snapshot.Margin))
	for _, p := range snapshot.Margin {
		line := fmt.Sprintf("- %s: net %.8f @ $%.2f = $%.2f", p.Symbol, p.NetAsset, p.PriceUSD, p.ValueUSD)
		if p.Borrowed > 0 {
			line += fmt.Sprintf(" (borrowed %.8f)", p.Borrowed)
		}
		lines = append(lines, line+"\n")
	}
	return lines
}

func futuresLines(snapshot *models.PortfolioSnapshot) []string {
	lines := make([]string, 0, len(snapshot.Futures))
	for _, p := range snapshot.Futures {
		lines = append(lines, fmt.Sprintf("- %s: %.4f contracts, entry $%.2f, mark $%.2f, %dx, uPnL $%.2f\n",
			p.Symbol, p.Amount, p.EntryPrice, p.PriceUSD, p.Leverage, p.UnrealizedPNL))
	}
	return lines
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
