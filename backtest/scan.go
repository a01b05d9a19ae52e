// Package backtest evaluates the scoring strategy across symbols,
// timeframes, trailing periods and parameter grids. Each unit of work
// is independent; failures are isolated and reported per unit, never
// aborting the batch.
package backtest

import (
	"context"
	"fmt"
	"log"
	"time"

	"tradewatch/config"
	"tradewatch/feed"
	"tradewatch/indicators"
	"tradewatch/journal"
	"tradewatch/market"
	"tradewatch/patterns"
	"tradewatch/scoring"
)

// Scanner drives backtest passes over a provider.
type Scanner struct {
	Provider feed.Provider
	Journal  journal.Journal // optional; nil skips alert persistence
	Config   *config.Config
}

// Result is one symbol's evaluation.
type Result struct {
	Symbol     string
	Score      float64
	Confidence float64
	Alert      bool
	Err        error // non-nil when the unit failed; other fields zero
}

// Summary aggregates a scan.
type Summary struct {
	Total  int
	Alerts int
}

// Scan evaluates every configured symbol once on the configured
// timeframe: fetch, indicators, patterns, score, confidence. A symbol
// whose confidence clears the threshold is an alert and is recorded to
// the journal when one is present.
func (s *Scanner) Scan(ctx context.Context) ([]Result, Summary, error) {
	if s.Provider == nil {
		return nil, Summary{}, fmt.Errorf("backtest: Provider is required")
	}
	if s.Config == nil {
		return nil, Summary{}, fmt.Errorf("backtest: Config is required")
	}

	cfg := s.Config
	results := make([]Result, 0, len(cfg.Symbols))
	var sum Summary

	for _, symbol := range cfg.Symbols {
		select {
		case <-ctx.Done():
			return results, sum, ctx.Err()
		default:
		}

		series, err := s.Provider.GetOHLCV(ctx, symbol, cfg.Timeframe)
		if err != nil {
			log.Printf("[WARN] backtest: %s: %v", symbol, err)
			results = append(results, Result{Symbol: symbol, Err: err})
			continue
		}

		score, confidence, err := Evaluate(series, cfg.Indicators)
		if err != nil {
			log.Printf("[WARN] backtest: %s: %v", symbol, err)
			results = append(results, Result{Symbol: symbol, Err: err})
			continue
		}

		alert := confidence >= cfg.Alerts.ConfidenceThreshold
		sum.Total++
		if alert {
			sum.Alerts++
			if s.Journal != nil {
				rec := journal.AlertRecord{Time: time.Now().UTC(), Symbol: symbol, Score: score}
				if err := s.Journal.RecordAlert(rec); err != nil {
					log.Printf("[WARN] backtest: record alert for %s: %v", symbol, err)
				}
			}
		}

		results = append(results, Result{
			Symbol:     symbol,
			Score:      score,
			Confidence: confidence,
			Alert:      alert,
		})
	}

	return results, sum, nil
}

// Evaluate runs the full analysis pipe on one series: indicator
// annotation, pattern detection on the last bar, weighted score and its
// normalized confidence.
func Evaluate(series *market.Series, params indicators.Params) (score, confidence float64, err error) {
	if series.Len() == 0 {
		return 0, 0, fmt.Errorf("empty series for %s", series.Symbol)
	}
	if err := indicators.Compute(series, params); err != nil {
		return 0, 0, err
	}
	flags := patterns.Detect(series)
	score = scoring.Score(series, flags, nil)
	return score, scoring.Confidence(score), nil
}
