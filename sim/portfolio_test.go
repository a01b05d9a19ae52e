package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour int) time.Time {
	return time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
}

// assertStateInvariant checks the flat/entry coupling: EntryPrice is nil
// exactly when no position is open.
func assertStateInvariant(t *testing.T, p *Portfolio) {
	t.Helper()

	if p.Flat() {
		assert.Nil(t, p.EntryPrice)
	} else {
		assert.NotNil(t, p.EntryPrice)
	}
	assert.GreaterOrEqual(t, p.Cash, 0.0)
}

func TestPortfolioRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewPortfolio(100000)
	assertStateInvariant(t, p)

	buy, ok := p.Buy(100, ts(0))
	require.True(t, ok)
	assertStateInvariant(t, p)
	assert.Equal(t, Buy, buy.Action)
	assert.NotEmpty(t, buy.ID)
	assert.InDelta(t, 1000, p.Quantity, 1e-9)
	assert.InDelta(t, 0, p.Cash, 1e-9)
	require.NotNil(t, p.EntryPrice)
	assert.Equal(t, 100.0, *p.EntryPrice)

	sell := p.Sell(110, ts(1))
	assertStateInvariant(t, p)
	assert.Equal(t, Sell, sell.Action)
	assert.InDelta(t, 10000, sell.PnL, 1e-9)
	assert.InDelta(t, 110000, p.Cash, 1e-9)
	assert.True(t, p.Flat())
}

func TestPortfolioFlatRoundTripZeroPnL(t *testing.T) {
	t.Parallel()

	p := NewPortfolio(5000)
	p.Buy(50, ts(0))
	sell := p.Sell(50, ts(1))

	assert.InDelta(t, 0, sell.PnL, 1e-9)
	assert.InDelta(t, 5000, p.Cash, 1e-9)
}

func TestPortfolioEquity(t *testing.T) {
	t.Parallel()

	p := NewPortfolio(1000)
	assert.InDelta(t, 1000, p.Equity(123), 1e-9)

	p.Buy(10, ts(0))
	// 100 units marked at 12
	assert.InDelta(t, 1200, p.Equity(12), 1e-9)
}

func TestPortfolioHistoryOrder(t *testing.T) {
	t.Parallel()

	p := NewPortfolio(1000)
	p.RecordEquity(ts(0), 10)
	p.Buy(10, ts(1))
	p.RecordEquity(ts(1), 10)
	p.Sell(11, ts(2))
	p.RecordEquity(ts(2), 11)

	require.Len(t, p.History, 5)
	trades := p.History.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, Buy, trades[0].Action)
	assert.Equal(t, Sell, trades[1].Action)

	curve := p.History.EquityCurve()
	require.Len(t, curve, 3)
	assert.InDelta(t, 1000, curve[0].Equity, 1e-9)
	assert.InDelta(t, 1000, curve[1].Equity, 1e-9)
	assert.InDelta(t, 1100, curve[2].Equity, 1e-9)
}

func TestHistoryReturns(t *testing.T) {
	t.Parallel()

	h := History{
		EquityEvent{Time: ts(0), Equity: 1000},
		EquityEvent{Time: ts(1), Equity: 1100},
		EquityEvent{Time: ts(2), Equity: 990},
	}
	returns := h.Returns()
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Nil(t, History{EquityEvent{Time: ts(0), Equity: 1000}}.Returns())
}

func TestHistoryReturnsZeroEquity(t *testing.T) {
	t.Parallel()

	h := History{
		EquityEvent{Time: ts(0), Equity: 0},
		EquityEvent{Time: ts(1), Equity: 100},
	}
	returns := h.Returns()
	require.Len(t, returns, 1)
	assert.Equal(t, 0.0, returns[0])
}

func TestBuyZeroSpendIsNoOp(t *testing.T) {
	t.Parallel()

	// FullCash on an empty account commits nothing.
	p := NewPortfolioWithSizer(0, FullCash{})
	_, ok := p.Buy(100, ts(0))
	assert.False(t, ok)
	assertStateInvariant(t, p)
	assert.Empty(t, p.History)
	assert.True(t, p.Flat())

	// A zero-notional policy commits nothing either.
	p = NewPortfolioWithSizer(1000, FixedNotional{Amount: 0})
	_, ok = p.Buy(100, ts(0))
	assert.False(t, ok)
	assertStateInvariant(t, p)
	assert.Empty(t, p.History)
	assert.InDelta(t, 1000, p.Cash, 1e-9)
}

func TestBuyUnusablePriceIsNoOp(t *testing.T) {
	t.Parallel()

	p := NewPortfolio(1000)
	_, ok := p.Buy(0, ts(0))
	assert.False(t, ok)
	assertStateInvariant(t, p)
	assert.Empty(t, p.History)
	assert.InDelta(t, 1000, p.Cash, 1e-9)

	_, ok = p.Buy(-5, ts(0))
	assert.False(t, ok)
	assertStateInvariant(t, p)
	assert.InDelta(t, 1000, p.Cash, 1e-9)
}

func TestFullCashSizer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1000.0, FullCash{}.Spend(1000, 50))
}

func TestFixedFractionSizer(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 250, FixedFraction{Fraction: 0.25}.Spend(1000, 50), 1e-9)
	assert.Equal(t, 0.0, FixedFraction{Fraction: 0}.Spend(1000, 50))
	assert.Equal(t, 0.0, FixedFraction{Fraction: -1}.Spend(1000, 50))
	// fractions above one clamp to all-in
	assert.Equal(t, 1000.0, FixedFraction{Fraction: 2}.Spend(1000, 50))
}

func TestFixedNotionalSizer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 300.0, FixedNotional{Amount: 300}.Spend(1000, 50))
	assert.Equal(t, 1000.0, FixedNotional{Amount: 5000}.Spend(1000, 50))
	assert.Equal(t, 0.0, FixedNotional{Amount: -10}.Spend(1000, 50))
}

func TestPortfolioWithFractionSizer(t *testing.T) {
	t.Parallel()

	p := NewPortfolioWithSizer(1000, FixedFraction{Fraction: 0.5})
	p.Buy(10, ts(0))
	assertStateInvariant(t, p)

	assert.InDelta(t, 500, p.Cash, 1e-9)
	assert.InDelta(t, 50, p.Quantity, 1e-9)

	p.Sell(10, ts(1))
	assertStateInvariant(t, p)
	assert.InDelta(t, 1000, p.Cash, 1e-9)
}
