package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists records to a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the
// schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordAlert(a AlertRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO alerts (timestamp, symbol, score)
		VALUES (?, ?, ?)`,
		a.Time, a.Symbol, a.Score,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, action, timestamp, price, quantity, cash_after, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Symbol, t.Action, t.Time,
		t.Price, t.Quantity, t.CashAfter, t.PnL,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (timestamp, symbol, equity)
		VALUES (?, ?, ?)`,
		e.Time, e.Symbol, e.Equity,
	)
	return err
}

// ListAlertsSince returns alerts at or after t, oldest first. The daily
// digest reads its 24-hour window through this.
func (j *SQLite) ListAlertsSince(t time.Time) ([]AlertRecord, error) {
	rows, err := j.db.Query(`
		SELECT timestamp, symbol, score FROM alerts
		WHERE timestamp >= ? ORDER BY timestamp`,
		t,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlertRecord
	for rows.Next() {
		var rec AlertRecord
		if err := rows.Scan(&rec.Time, &rec.Symbol, &rec.Score); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTradesBySymbol returns every trade for a symbol, oldest first.
func (j *SQLite) ListTradesBySymbol(symbol string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, symbol, action, timestamp, price, quantity, cash_after, pnl
		FROM trades WHERE symbol = ? ORDER BY timestamp`,
		symbol,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(&rec.TradeID, &rec.Symbol, &rec.Action, &rec.Time,
			&rec.Price, &rec.Quantity, &rec.CashAfter, &rec.PnL); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
