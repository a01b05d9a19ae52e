package journal

const schema = `
CREATE TABLE IF NOT EXISTS alerts (
	timestamp DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	score REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_alerts_time ON alerts(timestamp);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	action TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	price REAL NOT NULL,
	quantity REAL NOT NULL,
	cash_after REAL NOT NULL,
	pnl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	timestamp DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(timestamp);
`
