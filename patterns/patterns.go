// Package patterns evaluates candlestick pattern predicates on the
// trailing bars of a series. Patterns are a point-in-time judgment about
// the last bar, not a full-series annotation.
package patterns

import (
	"math"

	"tradewatch/market"
)

// Pattern names form a fixed vocabulary shared with the scoring weight
// table.
const (
	Hammer           = "hammer"
	HangingMan       = "hanging_man"
	BullishEngulfing = "bullish_engulfing"
	BearishHarami    = "bearish_harami"
	ShootingStar     = "shooting_star"
	Gravestone       = "gravestone"
	Doji             = "doji"
	MorningStar      = "morning_star"
)

// Names lists every pattern in the vocabulary.
var Names = []string{
	Hammer, HangingMan, BullishEngulfing, BearishHarami,
	ShootingStar, Gravestone, Doji, MorningStar,
}

// Flags maps pattern name to whether it holds on the last bar. Several
// flags can be true at once.
type Flags map[string]bool

// Detect evaluates every pattern on the last bar of s, looking back up
// to three bars where a pattern needs context. Patterns whose lookback
// requirement is not met are false; an empty series yields all-false.
//
// The thresholds are a heuristic rule-set, kept bit-for-bit compatible
// with the scoring weights tuned against them.
func Detect(s *market.Series) Flags {
	flags := make(Flags, len(Names))
	for _, name := range Names {
		flags[name] = false
	}

	n := s.Len()
	if n == 0 {
		return flags
	}

	last := s.Bar(n - 1)
	body := math.Abs(last.Close - last.Open)
	rng := last.High - last.Low
	upperShadow := last.High - math.Max(last.Open, last.Close)
	lowerShadow := math.Min(last.Open, last.Close) - last.Low

	// A zero-range bar has no shadows or body to compare; treat every
	// ratio test as failing rather than dividing by zero.
	if rng > 0 {
		flags[Hammer] = lowerShadow > 2*body && body < 0.3*rng
		flags[ShootingStar] = upperShadow > 2*body && body < 0.3*rng
		flags[Gravestone] = body < 0.1*rng && upperShadow < 0.05*rng
		flags[Doji] = body < 0.1*rng && upperShadow > 0.1*rng && lowerShadow > 0.1*rng
	}

	if n >= 2 {
		prev := s.Bar(n - 2)
		flags[BullishEngulfing] = last.Close > last.Open &&
			last.Open < prev.Close && last.Close > prev.Open
		flags[BearishHarami] = last.Open < last.Close &&
			last.Open > prev.Close && last.Close < prev.Open
	}

	if n >= 3 {
		b3 := s.Bar(n - 3)
		prev := s.Bar(n - 2)

		flags[HangingMan] = flags[Hammer] && prev.Close > b3.Close

		body1 := math.Abs(b3.Close - b3.Open)
		body2 := math.Abs(prev.Close - prev.Open)
		bearish1 := b3.Close < b3.Open && body1 > 0
		smallMiddle := body2 < 0.5*body1
		bullish3 := last.Close > last.Open && last.Close > b3.Open-0.5*body1
		flags[MorningStar] = bearish1 && smallMiddle && bullish3
	}

	return flags
}
