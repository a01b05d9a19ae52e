// Package indicators computes technical indicator columns over a price
// series. Indicators are derived, read-only annotations: Compute only
// appends new columns and never touches the bars themselves.
package indicators

import "fmt"

// Params selects which indicators to compute.
type Params struct {
	RSI       int             `json:"rsi" yaml:"rsi"`
	EMA       []int           `json:"ema" yaml:"ema"`
	Bollinger BollingerParams `json:"bollinger" yaml:"bollinger"`
}

// BollingerParams configures the Bollinger Band envelope.
type BollingerParams struct {
	Window int     `json:"window" yaml:"window"`
	Std    float64 `json:"std" yaml:"std"`
}

// Default mirrors the stock configuration: RSI(14), EMA 20/50,
// Bollinger(20, 2).
func Default() Params {
	return Params{
		RSI:       14,
		EMA:       []int{20, 50},
		Bollinger: BollingerParams{Window: 20, Std: 2},
	}
}

// Validate rejects malformed windows before any computation runs.
func (p Params) Validate() error {
	if p.RSI <= 0 {
		return fmt.Errorf("rsi window must be positive, got %d", p.RSI)
	}
	for _, span := range p.EMA {
		if span <= 0 {
			return fmt.Errorf("ema span must be positive, got %d", span)
		}
	}
	if p.Bollinger.Window <= 0 {
		return fmt.Errorf("bollinger window must be positive, got %d", p.Bollinger.Window)
	}
	if p.Bollinger.Std < 0 {
		return fmt.Errorf("bollinger std must be non-negative, got %g", p.Bollinger.Std)
	}
	return nil
}

// EMAColumn names the output column for a given span, e.g. "ema_20".
func EMAColumn(span int) string { return fmt.Sprintf("ema_%d", span) }
