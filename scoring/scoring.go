// Package scoring combines pattern flags, indicator threshold crossings
// and Bollinger breakouts into one signed confidence score.
package scoring

import (
	"sort"
	"strconv"
	"strings"

	"tradewatch/indicators"
	"tradewatch/market"
	"tradewatch/patterns"
)

// Signal names for non-pattern contributions.
const (
	RSIOverbought = "rsi_overbought"
	RSIOversold   = "rsi_oversold"
	EMABullCross  = "ema_bull_cross"
	EMABearCross  = "ema_bear_cross"
	BBBreakUpper  = "bb_break_upper"
	BBBreakLower  = "bb_break_lower"
)

// rsiMeanWindow is the trailing window used to establish the RSI
// baseline (minimum one observation).
const rsiMeanWindow = 14

// DefaultWeights is the process-wide signal weight table. It is treated
// as immutable; callers override per invocation via the weights argument
// of Score.
var DefaultWeights = map[string]float64{
	patterns.Hammer:           1.0,
	patterns.HangingMan:       -1.0,
	patterns.BullishEngulfing: 1.5,
	patterns.BearishHarami:    -1.5,
	patterns.ShootingStar:     -1.0,
	patterns.Gravestone:       -1.0,
	patterns.Doji:             0.5,
	patterns.MorningStar:      2.0,
	RSIOverbought:             -1.0,
	RSIOversold:               1.0,
	EMABullCross:              1.0,
	EMABearCross:              -1.0,
	BBBreakUpper:              1.0,
	BBBreakLower:              -1.0,
}

// MaxScore is the sum of all positive default weights; it is the
// normalizer for Confidence.
func MaxScore() float64 {
	var sum float64
	for _, w := range DefaultWeights {
		if w > 0 {
			sum += w
		}
	}
	return sum
}

// Confidence normalizes a raw score by the positive-weight sum. The
// raw score itself is never clamped or normalized.
func Confidence(score float64) float64 {
	max := MaxScore()
	if max == 0 {
		return 0
	}
	return score / max
}

// Score sums the weights of every active signal: true pattern flags,
// RSI extremes relative to the trailing RSI mean, a cross of the two
// shortest EMAs, and Bollinger Band breakouts. Overrides merge on top
// of DefaultWeights key by key. Missing columns silently skip their
// contribution; the result is an unnormalized signed float.
func Score(s *market.Series, flags patterns.Flags, overrides map[string]float64) float64 {
	wts := make(map[string]float64, len(DefaultWeights)+len(overrides))
	for k, v := range DefaultWeights {
		wts[k] = v
	}
	for k, v := range overrides {
		wts[k] = v
	}

	var score float64

	for name, active := range flags {
		if !active {
			continue
		}
		if w, ok := wts[name]; ok {
			score += w
		}
	}

	score += rsiSignal(s, wts)
	score += emaCrossSignal(s, wts)
	score += bollingerSignal(s, wts)

	return score
}

// rsiSignal compares the latest RSI to its trailing mean: more than 10
// points above is overbought, more than 10 below is oversold.
func rsiSignal(s *market.Series, wts map[string]float64) float64 {
	col, ok := s.Column(indicators.ColRSI)
	if !ok || len(col) == 0 {
		return 0
	}
	latest := col[len(col)-1]
	if !latest.Valid {
		return 0
	}

	var sum float64
	var count int
	start := len(col) - rsiMeanWindow
	if start < 0 {
		start = 0
	}
	for _, v := range col[start:] {
		if v.Valid {
			sum += v.Val
			count++
		}
	}
	if count == 0 {
		return 0
	}
	mean := sum / float64(count)

	var score float64
	if latest.Val > mean+10 {
		score += wts[RSIOverbought]
	}
	if latest.Val < mean-10 {
		score += wts[RSIOversold]
	}
	return score
}

// emaCrossSignal detects a cross of the two smallest-span EMA columns
// between the last two bars. Fewer than two EMA columns or two bars,
// or undefined values at either bar, skip the signal.
func emaCrossSignal(s *market.Series, wts map[string]float64) float64 {
	spans := emaSpans(s)
	if len(spans) < 2 || s.Len() < 2 {
		return 0
	}

	short, _ := s.Column(indicators.EMAColumn(spans[0]))
	long, _ := s.Column(indicators.EMAColumn(spans[1]))
	n := s.Len()
	s1, l1 := short[n-1], long[n-1]
	s2, l2 := short[n-2], long[n-2]
	if !s1.Valid || !l1.Valid || !s2.Valid || !l2.Valid {
		return 0
	}

	var score float64
	if s1.Val > l1.Val && s2.Val <= l2.Val {
		score += wts[EMABullCross]
	}
	if s1.Val < l1.Val && s2.Val >= l2.Val {
		score += wts[EMABearCross]
	}
	return score
}

// bollingerSignal scores a close beyond either band on the last bar.
func bollingerSignal(s *market.Series, wts map[string]float64) float64 {
	upper, okU := s.Column(indicators.ColBBUpper)
	lower, okL := s.Column(indicators.ColBBLower)
	n := s.Len()
	if !okU || !okL || n == 0 {
		return 0
	}
	u, l := upper[n-1], lower[n-1]
	close := s.Bar(n - 1).Close

	var score float64
	if u.Valid && close > u.Val {
		score += wts[BBBreakUpper]
	}
	if l.Valid && close < l.Val {
		score += wts[BBBreakLower]
	}
	return score
}

// emaSpans extracts span values from ema_<n> columns, ascending.
func emaSpans(s *market.Series) []int {
	var spans []int
	for _, name := range s.Columns() {
		num, ok := strings.CutPrefix(name, "ema_")
		if !ok {
			continue
		}
		span, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		spans = append(spans, span)
	}
	sort.Ints(spans)
	return spans
}
