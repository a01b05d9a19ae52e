// Package performance converts a return series into an equity curve,
// drawdown series and summary risk statistics.
package performance

import (
	"errors"
	"math"
)

// ErrNoReturns distinguishes "no data" from a computed-zero result.
var ErrNoReturns = errors.New("performance: empty return series")

// periodsPerYear is the annualization base. The convention assumes the
// input returns are daily-like: N periods map onto a 252-period trading
// year. It is only sound for daily sampling.
const periodsPerYear = 252

// Curve holds the per-period equity and drawdown series, aligned with
// the input returns.
type Curve struct {
	Equity   []float64
	Drawdown []float64
}

// Stats summarizes a return series. Sharpe is NaN when the annualized
// volatility is zero; that sentinel is deliberate, never a crash.
type Stats struct {
	TotalReturn  float64
	AnnualReturn float64
	AnnualVol    float64
	Sharpe       float64
	MaxDrawdown  float64
}

// Compute derives the cumulative equity curve, the drawdown against the
// running peak, and summary statistics from per-period fractional
// returns. The output is a fresh value each call; re-derive for another
// window by slicing the input.
func Compute(returns []float64) (Curve, Stats, error) {
	n := len(returns)
	if n == 0 {
		return Curve{}, Stats{}, ErrNoReturns
	}

	equity := make([]float64, n)
	drawdown := make([]float64, n)

	acc := 1.0
	runningMax := math.Inf(-1)
	maxDD := 0.0
	for i, r := range returns {
		acc *= 1 + r
		equity[i] = acc
		if acc > runningMax {
			runningMax = acc
		}
		drawdown[i] = acc/runningMax - 1
		if drawdown[i] < maxDD {
			maxDD = drawdown[i]
		}
	}

	final := equity[n-1]
	annualReturn := math.Pow(final, periodsPerYear/float64(n)) - 1
	annualVol := stdev(returns) * math.Sqrt(periodsPerYear)

	sharpe := math.NaN()
	if annualVol != 0 {
		sharpe = annualReturn / annualVol
	}

	stats := Stats{
		TotalReturn:  final - 1,
		AnnualReturn: annualReturn,
		AnnualVol:    annualVol,
		Sharpe:       sharpe,
		MaxDrawdown:  maxDD,
	}
	return Curve{Equity: equity, Drawdown: drawdown}, stats, nil
}

// stdev is the sample standard deviation; a single observation has no
// spread and yields 0.
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}
