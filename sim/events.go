// Package sim is the paper-trading core: a single-position spot
// portfolio that consumes per-bar scores and prices and emits a history
// of trade and equity events.
package sim

import "time"

// Action is the direction of a trade event.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Event is one entry of a portfolio history. Exactly two kinds exist:
// TradeEvent and EquityEvent. The tagged forms let consumers switch
// exhaustively instead of probing optional fields.
type Event interface {
	When() time.Time
}

// TradeEvent records a fill. PnL is meaningful only on SELL; it is the
// realized profit against the position's entry price.
type TradeEvent struct {
	ID        string
	Action    Action
	Time      time.Time
	Price     float64
	Quantity  float64
	CashAfter float64
	PnL       float64
}

func (e TradeEvent) When() time.Time { return e.Time }

// EquityEvent records a mark-to-market snapshot: cash plus position
// value at the bar's price.
type EquityEvent struct {
	Time   time.Time
	Equity float64
}

func (e EquityEvent) When() time.Time { return e.Time }

// History is the append-only, time-ordered event log of a run. It is
// the durable output of a simulation; the portfolio state itself is
// discarded at run end.
type History []Event

// Trades extracts the trade events in order.
func (h History) Trades() []TradeEvent {
	var out []TradeEvent
	for _, ev := range h {
		if t, ok := ev.(TradeEvent); ok {
			out = append(out, t)
		}
	}
	return out
}

// EquityCurve extracts the equity snapshots in order.
func (h History) EquityCurve() []EquityEvent {
	var out []EquityEvent
	for _, ev := range h {
		if e, ok := ev.(EquityEvent); ok {
			out = append(out, e)
		}
	}
	return out
}

// Returns derives per-period fractional returns from the equity
// snapshots, suitable for performance.Compute.
func (h History) Returns() []float64 {
	curve := h.EquityCurve()
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, curve[i].Equity/prev-1)
	}
	return out
}
