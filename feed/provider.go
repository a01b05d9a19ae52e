// Package feed supplies OHLCV series from market data providers. The
// core never performs I/O itself; a Provider is handed to whatever
// orchestrates a run.
package feed

import (
	"context"

	"tradewatch/market"
)

// Provider fetches an ordered bar series for a symbol and timeframe.
// Missing or unusable rows are simply absent from the result; no
// interpolation.
type Provider interface {
	GetOHLCV(ctx context.Context, symbol, timeframe string) (*market.Series, error)
}
