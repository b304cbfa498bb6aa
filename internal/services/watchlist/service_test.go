package watchlist

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/models"
	"github.com/bobmcallan/cryptofolio/internal/storage"
)

type fakeTickers struct {
	stats map[string]*models.Ticker24h
}

func (f *fakeTickers) HasCredentials() bool { return false }
func (f *fakeTickers) GetSpotBalances(ctx context.Context) ([]models.SpotBalance, error) {
	return nil, nil
}
func (f *fakeTickers) GetMarginAssets(ctx context.Context) ([]models.MarginAsset, error) {
	return nil, nil
}
func (f *fakeTickers) GetFuturesPositions(ctx context.Context) ([]models.FuturesAccountPosition, error) {
	return nil, nil
}
func (f *fakeTickers) GetTickerPrice(ctx context.Context, pair string) (float64, error) {
	return 0, fmt.Errorf("no market")
}
func (f *fakeTickers) GetFuturesTickerPrice(ctx context.Context, pair string) (float64, error) {
	return 0, fmt.Errorf("no market")
}
func (f *fakeTickers) GetMyTrades(ctx context.Context, pair string) ([]models.Trade, error) {
	return nil, nil
}
func (f *fakeTickers) GetTicker24h(ctx context.Context, pair string) (*models.Ticker24h, error) {
	if stats, ok := f.stats[pair]; ok {
		return stats, nil
	}
	return nil, fmt.Errorf("no stats for %s", pair)
}
func (f *fakeTickers) GetKlines(ctx context.Context, pair, interval string, limit int) ([]models.Kline, error) {
	return nil, fmt.Errorf("no klines")
}

func newTestService(t *testing.T, tickers *fakeTickers) *Service {
	t.Helper()
	logger := common.NewLogger("error")
	manager, err := storage.NewManager(logger, filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return NewService(manager, tickers, logger)
}

func TestWatchlist_AddListRemove(t *testing.T) {
	svc := newTestService(t, &fakeTickers{
		stats: map[string]*models.Ticker24h{
			"BTCUSDT": {Symbol: "BTCUSDT", LastPrice: 50000, PriceChangePercent: 2.5, QuoteVolume: 1e9},
		},
	})
	ctx := context.Background()

	// Empty at first.
	quotes, err := svc.GetWatchlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	require.NoError(t, svc.AddSymbol(ctx, " btc "))
	require.NoError(t, svc.AddSymbol(ctx, "SOL"))
	require.NoError(t, svc.AddSymbol(ctx, "BTC")) // duplicate, no-op

	quotes, err = svc.GetWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "BTC", quotes[0].Symbol)
	assert.True(t, quotes[0].Quoted)
	assert.Equal(t, 50000.0, quotes[0].PriceUSD)
	assert.Equal(t, 2.5, quotes[0].Change24H)

	// SOL has no upstream stats: listed but unquoted.
	assert.Equal(t, "SOL", quotes[1].Symbol)
	assert.False(t, quotes[1].Quoted)
	assert.Zero(t, quotes[1].PriceUSD)

	require.NoError(t, svc.RemoveSymbol(ctx, "btc"))
	quotes, err = svc.GetWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "SOL", quotes[0].Symbol)
}

func TestWatchlist_RemoveMissing(t *testing.T) {
	svc := newTestService(t, &fakeTickers{})
	err := svc.RemoveSymbol(context.Background(), "XRP")
	assert.Error(t, err)
}

func TestWatchlist_AddEmptySymbol(t *testing.T) {
	svc := newTestService(t, &fakeTickers{})
	assert.Error(t, svc.AddSymbol(context.Background(), "   "))
}
