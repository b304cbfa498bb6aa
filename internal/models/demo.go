package models

// Demonstration dataset returned when no API credentials are configured,
// and the fixed allocation substituted when aggregation yields nothing.
// Both fallback paths share this single fixture; the trigger conditions
// stay distinct (no-credentials mode vs. total-emptiness fallback).
// The position values are balanced so that aggregating DemoPositions
// reproduces DemoTotalValue, DemoChange24H, and DemoAllocation exactly.

const (
	DemoTotalValue    = 50000.0
	DemoChange24H     = 2.5
	DemoHoldingsCount = 6
)

func ptr[T any](v T) *T { return &v }

// DemoAllocation is the fixed six-asset allocation used when an
// aggregation pass produces zero value and zero holdings.
func DemoAllocation() []AllocationEntry {
	return []AllocationEntry{
		{Symbol: "BTC", Percentage: 50.0},
		{Symbol: "ETH", Percentage: 20.0},
		{Symbol: "BNB", Percentage: 10.0},
		{Symbol: "ADA", Percentage: 8.0},
		{Symbol: "SOL", Percentage: 7.0},
		{Symbol: "DOT", Percentage: 5.0},
	}
}

// DemoPositions is the full demonstration position set spanning all
// three asset classes, used when no credentials are configured.
func DemoPositions() *PositionsByClass {
	p := NewPositionsByClass()

	p.Spot["BTC_spot"] = &SpotPosition{
		Symbol:       "BTC",
		Free:         0.5,
		Total:        0.5,
		PriceUSD:     50000.0,
		ValueUSD:     25000.0,
		AvgBuyPrice:  ptr(45000.0),
		PNLUSD:       ptr(2500.0),
		PNLPct:       ptr(11.11),
		Change24H:    ptr(2.5),
		FirstBuyTime: ptr(int64(1609459200000)),
		LastBuyTime:  ptr(int64(1625097600000)),
	}
	p.Spot["ETH_spot"] = &SpotPosition{
		Symbol:       "ETH",
		Free:         5.0,
		Total:        5.0,
		PriceUSD:     2000.0,
		ValueUSD:     10000.0,
		AvgBuyPrice:  ptr(1800.0),
		PNLUSD:       ptr(1000.0),
		PNLPct:       ptr(11.11),
		Change24H:    ptr(1.8),
		FirstBuyTime: ptr(int64(1609459200000)),
		LastBuyTime:  ptr(int64(1625097600000)),
	}

	p.Margin["BNB_margin"] = &MarginPosition{
		Symbol:       "BNB",
		NetAsset:     10.0,
		PriceUSD:     500.0,
		ValueUSD:     5000.0,
		AvgBuyPrice:  ptr(450.0),
		PNLUSD:       ptr(500.0),
		PNLPct:       ptr(11.11),
		Change24H:    ptr(-0.5),
		FirstBuyTime: ptr(int64(1609459200000)),
		LastBuyTime:  ptr(int64(1625097600000)),
	}
	p.Margin["ADA_margin"] = &MarginPosition{
		Symbol:       "ADA",
		NetAsset:     1000.0,
		PriceUSD:     4.0,
		ValueUSD:     4000.0,
		AvgBuyPrice:  ptr(3.2),
		PNLUSD:       ptr(800.0),
		PNLPct:       ptr(25.0),
		Change24H:    ptr(4.0),
		FirstBuyTime: ptr(int64(1609459200000)),
		LastBuyTime:  ptr(int64(1625097600000)),
	}

	p.Futures["SOL_futures"] = &FuturesPosition{
		Symbol:        "SOL",
		Amount:        35.0,
		EntryPrice:    90.0,
		Leverage:      5,
		PriceUSD:      100.0,
		ValueUSD:      3500.0,
		UnrealizedPNL: 350.0,
		Change24H:     ptr(8.0),
	}
	p.Futures["DOT_futures"] = &FuturesPosition{
		Symbol:        "DOT",
		Amount:        100.0,
		EntryPrice:    20.0,
		Leverage:      3,
		PriceUSD:      25.0,
		ValueUSD:      2500.0,
		UnrealizedPNL: 500.0,
		Change24H:     ptr(1.2),
	}

	return p
}
