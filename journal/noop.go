package journal

// Noop discards everything. Useful default when persistence is not
// configured.
type Noop struct{}

func (Noop) RecordAlert(AlertRecord) error   { return nil }
func (Noop) RecordTrade(TradeRecord) error   { return nil }
func (Noop) RecordEquity(EquityRecord) error { return nil }
func (Noop) Close() error                    { return nil }
