package indicators

import (
	"math"

	"tradewatch/market"
)

// Column names produced by Compute.
const (
	ColRSI     = "rsi"
	ColBBMid   = "bb_mid"
	ColBBStd   = "bb_std"
	ColBBUpper = "bb_upper"
	ColBBLower = "bb_lower"
)

// Compute annotates the series with RSI, one EMA column per configured
// span, and Bollinger Bands. Values inside an indicator's warm-up window
// are undefined, not zero.
//
// Conventions:
//   - RSI: rolling-mean gains over rolling-mean losses mapped through
//     100 - 100/(1+RS). A window with no losses yields 100; a window
//     with no moves at all stays undefined. The first `window` bars are
//     undefined.
//   - EMA: smoothing 2/(span+1), seeded with the first close, no bias
//     adjustment; defined from the first bar.
//   - Bollinger: rolling mean plus/minus k times the rolling sample
//     standard deviation; the bands need a window of at least 2, the
//     mid line only needs the window filled.
func Compute(s *market.Series, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	closes := s.Closes()

	if err := s.SetColumn(ColRSI, rsi(closes, p.RSI)); err != nil {
		return err
	}
	for _, span := range p.EMA {
		if err := s.SetColumn(EMAColumn(span), ema(closes, span)); err != nil {
			return err
		}
	}

	mid, std := rollingMeanStd(closes, p.Bollinger.Window)
	upper := make([]market.Float, len(closes))
	lower := make([]market.Float, len(closes))
	for i := range closes {
		if !mid[i].Valid || !std[i].Valid {
			continue
		}
		upper[i] = market.Value(mid[i].Val + p.Bollinger.Std*std[i].Val)
		lower[i] = market.Value(mid[i].Val - p.Bollinger.Std*std[i].Val)
	}
	if err := s.SetColumn(ColBBMid, mid); err != nil {
		return err
	}
	if err := s.SetColumn(ColBBStd, std); err != nil {
		return err
	}
	if err := s.SetColumn(ColBBUpper, upper); err != nil {
		return err
	}
	return s.SetColumn(ColBBLower, lower)
}

// rsi computes the rolling-mean RSI. Index i needs `window` close-over-
// close diffs and the first diff exists at index 1, so entries before
// index `window` are undefined.
func rsi(closes []float64, window int) []market.Float {
	out := make([]market.Float, len(closes))
	if len(closes) < 2 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			gains[i] = diff
		} else {
			losses[i] = -diff
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}
		if i < window {
			continue
		}

		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)
		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window, RS is indeterminate
		case avgLoss == 0:
			out[i] = market.Value(100)
		default:
			rs := avgGain / avgLoss
			out[i] = market.Value(100 - 100/(1+rs))
		}
	}
	return out
}

// ema computes an exponential moving average seeded with the first
// close.
func ema(closes []float64, span int) []market.Float {
	out := make([]market.Float, len(closes))
	if len(closes) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	cur := closes[0]
	out[0] = market.Value(cur)
	for i := 1; i < len(closes); i++ {
		cur = (closes[i]-cur)*alpha + cur
		out[i] = market.Value(cur)
	}
	return out
}

// rollingMeanStd computes a rolling mean and rolling sample standard
// deviation over the trailing window. The std needs at least two
// observations, so a window of 1 leaves it undefined everywhere.
func rollingMeanStd(closes []float64, window int) (mean, std []market.Float) {
	mean = make([]market.Float, len(closes))
	std = make([]market.Float, len(closes))

	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		m := sum / float64(window)
		mean[i] = market.Value(m)

		if window < 2 {
			continue
		}
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - m
			sq += d * d
		}
		std[i] = market.Value(math.Sqrt(sq / float64(window-1)))
	}
	return mean, std
}
