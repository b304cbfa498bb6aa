// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// BinanceClient provides access to the Binance REST API. Account
// endpoints require credentials; ticker and kline endpoints are public.
type BinanceClient interface {
	// HasCredentials reports whether signed endpoints are usable.
	HasCredentials() bool

	// GetSpotBalances retrieves all spot account balances.
	GetSpotBalances(ctx context.Context) ([]models.SpotBalance, error)

	// GetMarginAssets retrieves all cross-margin user assets.
	GetMarginAssets(ctx context.Context) ([]models.MarginAsset, error)

	// GetFuturesPositions retrieves all futures account positions.
	GetFuturesPositions(ctx context.Context) ([]models.FuturesAccountPosition, error)

	// GetTickerPrice retrieves the current spot price for a trading pair.
	GetTickerPrice(ctx context.Context, pair string) (float64, error)

	// GetFuturesTickerPrice retrieves the current derivatives-market price.
	GetFuturesTickerPrice(ctx context.Context, pair string) (float64, error)

	// GetMyTrades retrieves the executed trade history for a trading pair.
	GetMyTrades(ctx context.Context, pair string) ([]models.Trade, error)

	// GetTicker24h retrieves 24-hour rolling statistics for a trading pair.
	GetTicker24h(ctx context.Context, pair string) (*models.Ticker24h, error)

	// GetKlines retrieves candlestick bars for a trading pair.
	GetKlines(ctx context.Context, pair, interval string, limit int) ([]models.Kline, error)
}

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
