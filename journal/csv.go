package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes records to three flat files, one per record kind. The
// files are spreadsheet-ready tabular exports.
type CSV struct {
	alerts, trades, equity *csv.Writer
	af, tf, ef             *os.File
}

// NewCSV creates the three files and writes their headers.
func NewCSV(alertsPath, tradesPath, equityPath string) (*CSV, error) {
	af, err := os.Create(alertsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		af.Close()
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		af.Close()
		tf.Close()
		return nil, err
	}

	aw := csv.NewWriter(af)
	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := aw.Write([]string{"timestamp", "symbol", "score"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"trade_id", "symbol", "action", "timestamp", "price", "quantity", "cash_after", "pnl"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"timestamp", "symbol", "equity"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{aw, tw, ew} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSV{alerts: aw, trades: tw, equity: ew, af: af, tf: tf, ef: ef}, nil
}

func (j *CSV) RecordAlert(a AlertRecord) error {
	err := j.alerts.Write([]string{
		a.Time.Format(time.RFC3339),
		a.Symbol,
		f(a.Score),
	})
	if err != nil {
		return err
	}
	j.alerts.Flush()
	return j.alerts.Error()
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.Symbol,
		t.Action,
		t.Time.Format(time.RFC3339),
		f(t.Price),
		f(t.Quantity),
		f(t.CashAfter),
		f(t.PnL),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquityRecord) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		e.Symbol,
		f(e.Equity),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	for _, w := range []*csv.Writer{j.alerts, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, file := range []*os.File{j.af, j.tf, j.ef} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
