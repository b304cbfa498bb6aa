package holdings

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/models"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// fakeBinance is a scriptable BinanceClient for pipeline tests.
type fakeBinance struct {
	hasCredentials bool
	prices         map[string]float64 // pair -> spot price
	futuresPrices  map[string]float64
	spotBalances   []models.SpotBalance
	marginAssets   []models.MarginAsset
	futures        []models.FuturesAccountPosition
	trades         map[string][]models.Trade
	tickers        map[string]*models.Ticker24h
	klines         map[string][]models.Kline

	spotErr    error
	marginErr  error
	futuresErr error
	tradesErr  error
}

func (f *fakeBinance) HasCredentials() bool { return f.hasCredentials }

func (f *fakeBinance) GetSpotBalances(ctx context.Context) ([]models.SpotBalance, error) {
	return f.spotBalances, f.spotErr
}

func (f *fakeBinance) GetMarginAssets(ctx context.Context) ([]models.MarginAsset, error) {
	return f.marginAssets, f.marginErr
}

func (f *fakeBinance) GetFuturesPositions(ctx context.Context) ([]models.FuturesAccountPosition, error) {
	return f.futures, f.futuresErr
}

func (f *fakeBinance) GetTickerPrice(ctx context.Context, pair string) (float64, error) {
	if price, ok := f.prices[pair]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("no market for %s", pair)
}

func (f *fakeBinance) GetFuturesTickerPrice(ctx context.Context, pair string) (float64, error) {
	if price, ok := f.futuresPrices[pair]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("no futures market for %s", pair)
}

func (f *fakeBinance) GetMyTrades(ctx context.Context, pair string) ([]models.Trade, error) {
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	return f.trades[pair], nil
}

func (f *fakeBinance) GetTicker24h(ctx context.Context, pair string) (*models.Ticker24h, error) {
	if stats, ok := f.tickers[pair]; ok {
		return stats, nil
	}
	return nil, fmt.Errorf("no 24h stats for %s", pair)
}

func (f *fakeBinance) GetKlines(ctx context.Context, pair, interval string, limit int) ([]models.Kline, error) {
	if klines, ok := f.klines[pair]; ok {
		return klines, nil
	}
	return nil, fmt.Errorf("no klines for %s", pair)
}

func newTestService(binance *fakeBinance) *Service {
	return NewService(binance, nil, common.NewLogger("error"))
}

// --- Price resolution ---

func TestResolvePrice_Direct(t *testing.T) {
	svc := newTestService(&fakeBinance{
		prices: map[string]float64{"BTCUSDT": 50000},
	})
	price := svc.ResolvePrice(context.Background(), "BTC")
	if !approxEqual(price, 50000, 1e-9) {
		t.Errorf("price = %f, want 50000", price)
	}
}

func TestResolvePrice_BridgeFallback(t *testing.T) {
	// No direct RUNEUSDT market; RUNEBTC * BTCUSDT must be used.
	svc := newTestService(&fakeBinance{
		prices: map[string]float64{
			"RUNEBTC": 0.0001,
			"BTCUSDT": 50000,
		},
	})
	price := svc.ResolvePrice(context.Background(), "RUNE")
	if !approxEqual(price, 5.0, 1e-9) {
		t.Errorf("price = %f, want 5.0", price)
	}
}

func TestResolvePrice_Unresolvable(t *testing.T) {
	svc := newTestService(&fakeBinance{prices: map[string]float64{}})
	if price := svc.ResolvePrice(context.Background(), "NOPE"); price != 0 {
		t.Errorf("price = %f, want 0", price)
	}
}

func TestResolvePrice_ReferenceCurrency(t *testing.T) {
	svc := newTestService(&fakeBinance{})
	if price := svc.ResolvePrice(context.Background(), "USDT"); price != 1.0 {
		t.Errorf("price = %f, want 1.0", price)
	}
}

// --- Cost basis ---

func TestComputeCostBasis_VWAP(t *testing.T) {
	svc := newTestService(&fakeBinance{
		trades: map[string][]models.Trade{
			"BTCUSDT": {
				{Price: 40000, Qty: 1.0, Time: 1000, IsBuyer: true},
				{Price: 50000, Qty: 1.0, Time: 3000, IsBuyer: true},
				{Price: 60000, Qty: 5.0, Time: 2000, IsBuyer: false}, // sell, excluded
			},
		},
	})

	basis := svc.ComputeCostBasis(context.Background(), "BTC")
	if basis.AvgBuyPrice == nil {
		t.Fatal("expected avg buy price")
	}
	if !approxEqual(*basis.AvgBuyPrice, 45000, 1e-9) {
		t.Errorf("avg = %f, want 45000", *basis.AvgBuyPrice)
	}
	if !approxEqual(basis.TotalQtyBought, 2.0, 1e-9) {
		t.Errorf("qty = %f, want 2.0", basis.TotalQtyBought)
	}
	if *basis.FirstBuyTime != 1000 || *basis.LastBuyTime != 3000 {
		t.Errorf("times = %d/%d, want 1000/3000", *basis.FirstBuyTime, *basis.LastBuyTime)
	}
}

func TestComputeCostBasis_NoBuys(t *testing.T) {
	svc := newTestService(&fakeBinance{
		trades: map[string][]models.Trade{
			"ETHUSDT": {{Price: 2000, Qty: 1.0, Time: 1000, IsBuyer: false}},
		},
	})

	basis := svc.ComputeCostBasis(context.Background(), "ETH")
	if basis.AvgBuyPrice != nil || basis.FirstBuyTime != nil || basis.TotalQtyBought != 0 {
		t.Errorf("expected empty basis, got %+v", basis)
	}
}

func TestComputeCostBasis_UpstreamFailure(t *testing.T) {
	svc := newTestService(&fakeBinance{tradesErr: fmt.Errorf("permission denied")})
	basis := svc.ComputeCostBasis(context.Background(), "BTC")
	if basis.AvgBuyPrice != nil {
		t.Errorf("expected empty basis on upstream failure, got %+v", basis)
	}
}

// --- Fetching ---

func TestFetchHoldings_NoCredentialsReturnsDemo(t *testing.T) {
	svc := newTestService(&fakeBinance{hasCredentials: false})

	positions, err := svc.FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("FetchHoldings: %v", err)
	}
	if len(positions.Spot) != 2 || len(positions.Margin) != 2 || len(positions.Futures) != 2 {
		t.Errorf("demo positions = %d/%d/%d, want 2/2/2",
			len(positions.Spot), len(positions.Margin), len(positions.Futures))
	}
	if _, ok := positions.Spot["BTC_spot"]; !ok {
		t.Error("demo spot missing BTC_spot key")
	}
}

func TestFetchHoldings_FiltersDust(t *testing.T) {
	svc := newTestService(&fakeBinance{
		hasCredentials: true,
		prices:         map[string]float64{"BTCUSDT": 50000, "ETHUSDT": 2000},
		spotBalances: []models.SpotBalance{
			{Asset: "BTC", Free: 0.5},
			{Asset: "ETH", Free: 0, Locked: 0}, // zero, excluded
		},
		marginAssets: []models.MarginAsset{
			{Asset: "ETH", NetAsset: -0.2}, // net borrow, excluded
		},
		futures: []models.FuturesAccountPosition{
			{Symbol: "ETHUSDT", PositionAmt: 0}, // flat, excluded
		},
	})

	positions, err := svc.FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("FetchHoldings: %v", err)
	}
	if len(positions.Spot) != 1 || len(positions.Margin) != 0 || len(positions.Futures) != 0 {
		t.Errorf("positions = %d/%d/%d, want 1/0/0",
			len(positions.Spot), len(positions.Margin), len(positions.Futures))
	}
}

func TestFetchHoldings_ClassFailureIsolated(t *testing.T) {
	svc := newTestService(&fakeBinance{
		hasCredentials: true,
		prices:         map[string]float64{"BTCUSDT": 50000},
		spotBalances:   []models.SpotBalance{{Asset: "BTC", Free: 1}},
		marginErr:      fmt.Errorf("margin account disabled"),
		futuresPrices:  map[string]float64{"SOLUSDT": 120},
		futures: []models.FuturesAccountPosition{
			{Symbol: "SOLUSDT", PositionAmt: 100, EntryPrice: 100, UnrealizedProfit: 2000, Leverage: 5},
		},
	})

	positions, err := svc.FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("FetchHoldings: %v", err)
	}
	if len(positions.Spot) != 1 {
		t.Errorf("spot = %d, want 1", len(positions.Spot))
	}
	if len(positions.Margin) != 0 {
		t.Errorf("margin = %d, want 0", len(positions.Margin))
	}
	sol, ok := positions.Futures["SOL_futures"]
	if !ok {
		t.Fatal("missing SOL_futures")
	}
	if !approxEqual(sol.ValueUSD, 12000, 1e-9) {
		t.Errorf("futures value = %f, want 12000", sol.ValueUSD)
	}
	if !approxEqual(sol.UnrealizedPNL, 2000, 1e-9) {
		t.Errorf("futures pnl = %f, want 2000 (from upstream)", sol.UnrealizedPNL)
	}
}

func TestFetchHoldings_AllClassesFailed(t *testing.T) {
	boom := fmt.Errorf("upstream down")
	svc := newTestService(&fakeBinance{
		hasCredentials: true,
		spotErr:        boom,
		marginErr:      boom,
		futuresErr:     boom,
	})

	if _, err := svc.FetchHoldings(context.Background()); err == nil {
		t.Fatal("expected error when every class fetch fails")
	}
}

func TestFetchHoldings_ShortFuturesValuedAbsolute(t *testing.T) {
	svc := newTestService(&fakeBinance{
		hasCredentials: true,
		futuresPrices:  map[string]float64{"ETHUSDT": 2000},
		futures: []models.FuturesAccountPosition{
			{Symbol: "ETHUSDT", PositionAmt: -3, EntryPrice: 2200, UnrealizedProfit: 600, Leverage: 10},
		},
	})

	positions, err := svc.FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("FetchHoldings: %v", err)
	}
	eth := positions.Futures["ETH_futures"]
	if eth == nil {
		t.Fatal("missing ETH_futures")
	}
	if !approxEqual(eth.ValueUSD, 6000, 1e-9) {
		t.Errorf("value = %f, want 6000 (abs amount * price)", eth.ValueUSD)
	}
	if !approxEqual(eth.Amount, -3, 1e-9) {
		t.Errorf("amount = %f, want -3 (direction preserved)", eth.Amount)
	}
}

// --- End to end ---

func TestGetHoldings_SpotScenario(t *testing.T) {
	svc := newTestService(&fakeBinance{
		hasCredentials: true,
		prices:         map[string]float64{"BTCUSDT": 50000},
		spotBalances:   []models.SpotBalance{{Asset: "BTC", Free: 0.5, Locked: 0}},
		trades: map[string][]models.Trade{
			"BTCUSDT": {{Price: 45000, Qty: 1.0, Time: 1609459200000, IsBuyer: true}},
		},
		tickers: map[string]*models.Ticker24h{
			"BTCUSDT": {Symbol: "BTCUSDT", PriceChangePercent: 2.5},
		},
	})

	snapshot, err := svc.GetHoldings(context.Background())
	if err != nil {
		t.Fatalf("GetHoldings: %v", err)
	}

	btc := snapshot.Spot["BTC_spot"]
	if btc == nil {
		t.Fatal("missing BTC_spot")
	}
	if !approxEqual(btc.Total, 0.5, 1e-9) {
		t.Errorf("total = %f, want 0.5", btc.Total)
	}
	if !approxEqual(btc.ValueUSD, 25000, 1e-9) {
		t.Errorf("value = %f, want 25000", btc.ValueUSD)
	}
	if btc.PNLUSD == nil || !approxEqual(*btc.PNLUSD, 2500, 1e-9) {
		t.Errorf("pnl = %v, want 2500", btc.PNLUSD)
	}
	if btc.PNLPct == nil || !approxEqual(*btc.PNLPct, 11.11, 0.01) {
		t.Errorf("pnl pct = %v, want ~11.11", btc.PNLPct)
	}
	if btc.Change24H == nil || !approxEqual(*btc.Change24H, 2.5, 1e-9) {
		t.Errorf("change = %v, want 2.5", btc.Change24H)
	}
	if !approxEqual(snapshot.TotalValueUSD, 25000, 1e-9) {
		t.Errorf("total value = %f, want 25000", snapshot.TotalValueUSD)
	}
	if snapshot.DemoData {
		t.Error("live snapshot must not be flagged as demo data")
	}
}
