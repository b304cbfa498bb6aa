package binance

import (
	"context"
	"net/url"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// accountResponse is the wire shape of GET /api/v3/account.
type accountResponse struct {
	Balances []struct {
		Asset  string      `json:"asset"`
		Free   stringFloat `json:"free"`
		Locked stringFloat `json:"locked"`
	} `json:"balances"`
}

// GetSpotBalances retrieves all spot account balances.
func (c *Client) GetSpotBalances(ctx context.Context) ([]models.SpotBalance, error) {
	var resp accountResponse
	if err := c.get(ctx, c.baseURL, "/api/v3/account", nil, true, &resp); err != nil {
		return nil, err
	}

	balances := make([]models.SpotBalance, len(resp.Balances))
	for i, b := range resp.Balances {
		balances[i] = models.SpotBalance{
			Asset:  b.Asset,
			Free:   float64(b.Free),
			Locked: float64(b.Locked),
		}
	}
	return balances, nil
}

// marginAccountResponse is the wire shape of GET /sapi/v1/margin/account.
type marginAccountResponse struct {
	UserAssets []struct {
		Asset    string      `json:"asset"`
		NetAsset stringFloat `json:"netAsset"`
		Borrowed stringFloat `json:"borrowed"`
		Free     stringFloat `json:"free"`
		Interest stringFloat `json:"interest"`
	} `json:"userAssets"`
}

// GetMarginAssets retrieves all cross-margin user assets.
func (c *Client) GetMarginAssets(ctx context.Context) ([]models.MarginAsset, error) {
	var resp marginAccountResponse
	if err := c.get(ctx, c.baseURL, "/sapi/v1/margin/account", nil, true, &resp); err != nil {
		return nil, err
	}

	assets := make([]models.MarginAsset, len(resp.UserAssets))
	for i, a := range resp.UserAssets {
		assets[i] = models.MarginAsset{
			Asset:    a.Asset,
			NetAsset: float64(a.NetAsset),
			Borrowed: float64(a.Borrowed),
			Free:     float64(a.Free),
			Interest: float64(a.Interest),
		}
	}
	return assets, nil
}

// futuresAccountResponse is the wire shape of GET /fapi/v2/account.
type futuresAccountResponse struct {
	Positions []struct {
		Symbol           string      `json:"symbol"`
		PositionAmt      stringFloat `json:"positionAmt"`
		EntryPrice       stringFloat `json:"entryPrice"`
		UnrealizedProfit stringFloat `json:"unrealizedProfit"`
		Leverage         stringFloat `json:"leverage"`
	} `json:"positions"`
}

// GetFuturesPositions retrieves all futures account positions.
func (c *Client) GetFuturesPositions(ctx context.Context) ([]models.FuturesAccountPosition, error) {
	var resp futuresAccountResponse
	if err := c.get(ctx, c.futuresBaseURL, "/fapi/v2/account", nil, true, &resp); err != nil {
		return nil, err
	}

	positions := make([]models.FuturesAccountPosition, len(resp.Positions))
	for i, p := range resp.Positions {
		positions[i] = models.FuturesAccountPosition{
			Symbol:           p.Symbol,
			PositionAmt:      float64(p.PositionAmt),
			EntryPrice:       float64(p.EntryPrice),
			UnrealizedProfit: float64(p.UnrealizedProfit),
			Leverage:         int(p.Leverage),
		}
	}
	return positions, nil
}

// tradeResponse is the wire shape of one fill from GET /api/v3/myTrades.
type tradeResponse struct {
	Symbol  string      `json:"symbol"`
	Price   stringFloat `json:"price"`
	Qty     stringFloat `json:"qty"`
	Time    int64       `json:"time"`
	IsBuyer bool        `json:"isBuyer"`
}

// GetMyTrades retrieves the executed trade history for a trading pair.
func (c *Client) GetMyTrades(ctx context.Context, pair string) ([]models.Trade, error) {
	params := url.Values{}
	params.Set("symbol", pair)

	var resp []tradeResponse
	if err := c.get(ctx, c.baseURL, "/api/v3/myTrades", params, true, &resp); err != nil {
		return nil, err
	}

	trades := make([]models.Trade, len(resp))
	for i, t := range resp {
		trades[i] = models.Trade{
			Symbol:  t.Symbol,
			Price:   float64(t.Price),
			Qty:     float64(t.Qty),
			Time:    t.Time,
			IsBuyer: t.IsBuyer,
		}
	}
	return trades, nil
}
