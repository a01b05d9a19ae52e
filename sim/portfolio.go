package sim

import (
	"math"
	"time"

	"tradewatch/internal/id"
)

// Portfolio is a single-position spot trading account. It is FLAT when
// Quantity is zero and LONG otherwise; EntryPrice is nil exactly when
// the portfolio is flat. At most one position is open at a time: no
// pyramiding, no shorting.
//
// A Portfolio is single-owner mutable state. Independent runs each own
// their own instance; nothing here is safe for concurrent use.
type Portfolio struct {
	Cash       float64
	Quantity   float64
	EntryPrice *float64

	History History

	sizer Sizer
}

// NewPortfolio creates an account with a starting cash balance and the
// full-cash sizing policy.
func NewPortfolio(initialCash float64) *Portfolio {
	return NewPortfolioWithSizer(initialCash, FullCash{})
}

// NewPortfolioWithSizer creates an account with an explicit sizing
// policy.
func NewPortfolioWithSizer(initialCash float64, sizer Sizer) *Portfolio {
	return &Portfolio{Cash: initialCash, sizer: sizer}
}

// Flat reports whether no position is open.
func (p *Portfolio) Flat() bool { return p.Quantity == 0 }

// Equity is cash plus the mark-to-market value of any open position at
// the given price.
func (p *Portfolio) Equity(price float64) float64 {
	return p.Cash + p.Quantity*price
}

// Buy opens a position at the given price, committing the cash chosen
// by the sizing policy. No fees are modeled: quantity bought times
// price equals cash spent exactly.
//
// When the policy commits no cash or the price is unusable, the buy is
// a no-op: no event, no entry price, portfolio untouched. The bool
// reports whether a position was opened.
func (p *Portfolio) Buy(price float64, t time.Time) (TradeEvent, bool) {
	spend := p.sizer.Spend(p.Cash, price)
	if spend <= 0 || price <= 0 {
		return TradeEvent{}, false
	}
	qty := spend / price
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return TradeEvent{}, false
	}
	cost := qty * price

	p.Cash -= cost
	p.Quantity += qty
	entry := price
	p.EntryPrice = &entry

	ev := TradeEvent{
		ID:        id.New(),
		Action:    Buy,
		Time:      t,
		Price:     price,
		Quantity:  qty,
		CashAfter: p.Cash,
	}
	p.History = append(p.History, ev)
	return ev, true
}

// Sell liquidates the entire position at the given price. Realized PnL
// is (price - entry) * quantity.
func (p *Portfolio) Sell(price float64, t time.Time) TradeEvent {
	qty := p.Quantity
	proceeds := qty * price

	var pnl float64
	if p.EntryPrice != nil {
		pnl = (price - *p.EntryPrice) * qty
	}

	p.Cash += proceeds
	p.Quantity = 0
	p.EntryPrice = nil

	ev := TradeEvent{
		ID:        id.New(),
		Action:    Sell,
		Time:      t,
		Price:     price,
		Quantity:  qty,
		CashAfter: p.Cash,
		PnL:       pnl,
	}
	p.History = append(p.History, ev)
	return ev
}

// RecordEquity appends a mark-to-market snapshot at the given price.
func (p *Portfolio) RecordEquity(t time.Time, price float64) EquityEvent {
	ev := EquityEvent{Time: t, Equity: p.Equity(price)}
	p.History = append(p.History, ev)
	return ev
}
