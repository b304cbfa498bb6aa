package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bobmcallan/cryptofolio/internal/models"
)

// tickerPriceResponse is the wire shape of the ticker/price endpoints.
type tickerPriceResponse struct {
	Symbol string      `json:"symbol"`
	Price  stringFloat `json:"price"`
}

// GetTickerPrice retrieves the current spot price for a trading pair.
func (c *Client) GetTickerPrice(ctx context.Context, pair string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", pair)

	var resp tickerPriceResponse
	if err := c.get(ctx, c.baseURL, "/api/v3/ticker/price", params, false, &resp); err != nil {
		return 0, err
	}
	return float64(resp.Price), nil
}

// GetFuturesTickerPrice retrieves the current derivatives-market price.
func (c *Client) GetFuturesTickerPrice(ctx context.Context, pair string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", pair)

	var resp tickerPriceResponse
	if err := c.get(ctx, c.futuresBaseURL, "/fapi/v1/ticker/price", params, false, &resp); err != nil {
		return 0, err
	}
	return float64(resp.Price), nil
}

// ticker24hResponse is the wire shape of GET /api/v3/ticker/24hr.
type ticker24hResponse struct {
	Symbol             string      `json:"symbol"`
	PriceChange        stringFloat `json:"priceChange"`
	PriceChangePercent stringFloat `json:"priceChangePercent"`
	LastPrice          stringFloat `json:"lastPrice"`
	Volume             stringFloat `json:"volume"`
	QuoteVolume        stringFloat `json:"quoteVolume"`
}

// GetTicker24h retrieves 24-hour rolling statistics for a trading pair.
// This endpoint is public; no signature is attached.
func (c *Client) GetTicker24h(ctx context.Context, pair string) (*models.Ticker24h, error) {
	params := url.Values{}
	params.Set("symbol", pair)

	var resp ticker24hResponse
	if err := c.get(ctx, c.baseURL, "/api/v3/ticker/24hr", params, false, &resp); err != nil {
		return nil, err
	}

	return &models.Ticker24h{
		Symbol:             resp.Symbol,
		PriceChange:        float64(resp.PriceChange),
		PriceChangePercent: float64(resp.PriceChangePercent),
		LastPrice:          float64(resp.LastPrice),
		Volume:             float64(resp.Volume),
		QuoteVolume:        float64(resp.QuoteVolume),
	}, nil
}

// klineResponse decodes Binance's positional kline array:
// [openTime, open, high, low, close, volume, closeTime, ...].
type klineResponse models.Kline

func (k *klineResponse) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 7 {
		return fmt.Errorf("kline entry has %d fields, want at least 7", len(fields))
	}

	if err := json.Unmarshal(fields[0], &k.OpenTime); err != nil {
		return fmt.Errorf("kline open time: %w", err)
	}
	if err := json.Unmarshal(fields[6], &k.CloseTime); err != nil {
		return fmt.Errorf("kline close time: %w", err)
	}

	targets := []*float64{&k.Open, &k.High, &k.Low, &k.Close, &k.Volume}
	for i, target := range targets {
		var v stringFloat
		if err := json.Unmarshal(fields[i+1], &v); err != nil {
			return fmt.Errorf("kline field %d: %w", i+1, err)
		}
		*target = float64(v)
	}
	return nil
}

// GetKlines retrieves candlestick bars for a trading pair.
func (c *Client) GetKlines(ctx context.Context, pair, interval string, limit int) ([]models.Kline, error) {
	if interval == "" {
		interval = "1d"
	}
	if limit <= 0 {
		limit = 30
	}

	params := url.Values{}
	params.Set("symbol", pair)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var resp []klineResponse
	if err := c.get(ctx, c.baseURL, "/api/v3/klines", params, false, &resp); err != nil {
		return nil, err
	}

	klines := make([]models.Kline, len(resp))
	for i, k := range resp {
		klines[i] = models.Kline(k)
	}
	return klines, nil
}
