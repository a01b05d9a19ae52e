// Package market defines the OHLCV series model shared by the analysis
// and simulation packages.
package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is a single OHLCV candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks the basic price invariants of a bar.
func (b Bar) Validate() error {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bar %s: non-finite value", b.Time.Format(time.RFC3339))
		}
		if v < 0 {
			return fmt.Errorf("bar %s: negative value", b.Time.Format(time.RFC3339))
		}
	}
	if b.Low > math.Min(b.Open, b.Close) || b.High < math.Max(b.Open, b.Close) {
		return fmt.Errorf("bar %s: low <= open,close <= high violated", b.Time.Format(time.RFC3339))
	}
	return nil
}

// Float is a defined-or-missing column value. Derived columns use it so
// that "not yet computed" is never conflated with a computed zero.
type Float struct {
	Val   float64
	Valid bool
}

// Value wraps v as a defined Float.
func Value(v float64) Float { return Float{Val: v, Valid: true} }
