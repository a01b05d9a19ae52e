package backtest

import (
	"context"
	"log"
	"sort"
	"sync"

	"tradewatch/config"
	"tradewatch/indicators"
	"tradewatch/market"
)

// ParamSet is one point of the optimization grid.
type ParamSet struct {
	RSI      int
	EMAShort int
	EMALong  int
	BBWindow int
	BBStd    float64
}

// Params expands the set into indicator parameters.
func (p ParamSet) Params() indicators.Params {
	return indicators.Params{
		RSI: p.RSI,
		EMA: []int{p.EMAShort, p.EMALong},
		Bollinger: indicators.BollingerParams{
			Window: p.BBWindow,
			Std:    p.BBStd,
		},
	}
}

// OptResult is one grid point's outcome. WinRate is the fraction of
// symbols whose confidence cleared the alert threshold under these
// parameters.
type OptResult struct {
	Params  ParamSet
	WinRate float64
}

// Optimize sweeps the configured parameter grid. Every grid point is an
// independent run over its own series copies, so points fan out across
// a bounded worker pool with no shared mutable state; results are only
// appended at the collection point.
//
// Cancellation between runs yields the results gathered so far plus the
// context error. Results come back sorted by win rate, best first.
func (s *Scanner) Optimize(ctx context.Context) ([]OptResult, error) {
	cfg := s.Config
	grid := expandGrid(cfg.Optimize)
	if len(grid) == 0 {
		return nil, nil
	}

	// Fetch each symbol's series once; workers evaluate on fresh
	// column-free copies of the shared read-only bars.
	base := make(map[string]*market.Series, len(cfg.Symbols))
	for _, symbol := range cfg.Symbols {
		series, err := s.Provider.GetOHLCV(ctx, symbol, cfg.Timeframe)
		if err != nil {
			log.Printf("[WARN] optimize: %s: %v", symbol, err)
			continue
		}
		if series.Len() > 0 {
			base[symbol] = series
		}
	}

	workers := cfg.Optimize.Workers
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan ParamSet)
	resultCh := make(chan OptResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ps := range jobs {
				resultCh <- OptResult{
					Params:  ps,
					WinRate: s.winRate(base, ps),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, ps := range grid {
			select {
			case <-ctx.Done():
				return
			case jobs <- ps:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var results []OptResult
	for r := range resultCh {
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].WinRate > results[j].WinRate
	})

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// winRate evaluates one parameter set over every fetched symbol and
// returns the alerting fraction. Per-symbol failures count as
// non-alerts.
func (s *Scanner) winRate(base map[string]*market.Series, ps ParamSet) float64 {
	if len(base) == 0 {
		return 0
	}
	alerts := 0
	for _, series := range base {
		_, confidence, err := Evaluate(cloneBars(series), ps.Params())
		if err != nil {
			log.Printf("[WARN] optimize: %s %+v: %v", series.Symbol, ps, err)
			continue
		}
		if confidence >= s.Config.Alerts.ConfidenceThreshold {
			alerts++
		}
	}
	return float64(alerts) / float64(len(base))
}

// expandGrid takes the cartesian product of the configured ranges.
func expandGrid(oc config.OptimizeConfig) []ParamSet {
	var out []ParamSet
	for _, rsi := range oc.RSI {
		for _, pair := range oc.EMAPairs {
			if len(pair) != 2 {
				continue
			}
			for _, w := range oc.BBWindows {
				for _, std := range oc.BBStds {
					out = append(out, ParamSet{
						RSI:      rsi,
						EMAShort: pair[0],
						EMALong:  pair[1],
						BBWindow: w,
						BBStd:    std,
					})
				}
			}
		}
	}
	return out
}
