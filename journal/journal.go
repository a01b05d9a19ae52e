// Package journal persists alert, trade and equity records. The core
// only produces these as structured events; backends here are the
// persistence sink consumed by reports and digests.
package journal

import (
	"time"

	"tradewatch/sim"
)

// AlertRecord is one scan alert: a symbol whose confidence cleared the
// configured threshold.
type AlertRecord struct {
	Time   time.Time
	Symbol string
	Score  float64
}

// TradeRecord is one BUY or SELL fill from a simulation run.
type TradeRecord struct {
	TradeID   string
	Symbol    string
	Action    string
	Time      time.Time
	Price     float64
	Quantity  float64
	CashAfter float64
	PnL       float64 // populated on SELL only
}

// EquityRecord is one mark-to-market snapshot.
type EquityRecord struct {
	Time   time.Time
	Symbol string
	Equity float64
}

// Journal records structured events. Implementations: SQLite, CSV,
// Noop.
type Journal interface {
	RecordAlert(AlertRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityRecord) error
	Close() error
}

// RecordHistory writes a simulation history into a journal, one record
// per event.
func RecordHistory(j Journal, symbol string, h sim.History) error {
	for _, ev := range h {
		switch e := ev.(type) {
		case sim.TradeEvent:
			rec := TradeRecord{
				TradeID:   e.ID,
				Symbol:    symbol,
				Action:    string(e.Action),
				Time:      e.Time,
				Price:     e.Price,
				Quantity:  e.Quantity,
				CashAfter: e.CashAfter,
				PnL:       e.PnL,
			}
			if err := j.RecordTrade(rec); err != nil {
				return err
			}
		case sim.EquityEvent:
			rec := EquityRecord{Time: e.Time, Symbol: symbol, Equity: e.Equity}
			if err := j.RecordEquity(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
