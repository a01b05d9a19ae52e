package backtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradewatch/config"
	"tradewatch/market"
)

func TestExpandGrid(t *testing.T) {
	t.Parallel()

	grid := expandGrid(config.OptimizeConfig{
		RSI:       []int{7, 14},
		EMAPairs:  [][]int{{10, 20}, {20, 50}},
		BBWindows: []int{10, 20},
		BBStds:    []float64{1, 2},
	})
	assert.Len(t, grid, 16)

	first := grid[0]
	assert.Equal(t, 7, first.RSI)
	assert.Equal(t, 10, first.EMAShort)
	assert.Equal(t, 20, first.EMALong)

	// malformed pairs are skipped, not fatal
	grid = expandGrid(config.OptimizeConfig{
		RSI:       []int{7},
		EMAPairs:  [][]int{{10}},
		BBWindows: []int{10},
		BBStds:    []float64{1},
	})
	assert.Empty(t, grid)
}

func TestParamSetParams(t *testing.T) {
	t.Parallel()

	ps := ParamSet{RSI: 7, EMAShort: 10, EMALong: 20, BBWindow: 15, BBStd: 1.5}
	p := ps.Params()
	assert.Equal(t, 7, p.RSI)
	assert.Equal(t, []int{10, 20}, p.EMA)
	assert.Equal(t, 15, p.Bollinger.Window)
	assert.InDelta(t, 1.5, p.Bollinger.Std, 1e-9)
}

func TestOptimizeSweepsGrid(t *testing.T) {
	t.Parallel()

	cfg := testConfig("A", "B")
	cfg.Alerts.ConfidenceThreshold = 0 // every evaluation alerts
	cfg.Optimize = config.OptimizeConfig{
		RSI:       []int{2, 3},
		EMAPairs:  [][]int{{2, 3}},
		BBWindows: []int{3},
		BBStds:    []float64{1, 2},
		Workers:   2,
	}

	scanner := &Scanner{
		Provider: &stubProvider{series: map[string]*market.Series{
			"A": trendingSeries("A", 20),
			"B": trendingSeries("B", 20),
		}},
		Config: cfg,
	}

	results, err := scanner.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	for _, r := range results {
		assert.InDelta(t, 1.0, r.WinRate, 1e-9)
	}
	// best first
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].WinRate, results[i].WinRate)
	}
}

func TestOptimizeEmptyGrid(t *testing.T) {
	t.Parallel()

	cfg := testConfig("A")
	cfg.Optimize = config.OptimizeConfig{}

	scanner := &Scanner{
		Provider: &stubProvider{},
		Config:   cfg,
	}
	results, err := scanner.Optimize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestOptimizeCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig("A")
	cfg.Optimize = config.OptimizeConfig{
		RSI:       []int{2, 3, 4},
		EMAPairs:  [][]int{{2, 3}},
		BBWindows: []int{3},
		BBStds:    []float64{1},
	}

	scanner := &Scanner{
		Provider: &stubProvider{series: map[string]*market.Series{
			"A": trendingSeries("A", 20),
		}},
		Config: cfg,
	}

	_, err := scanner.Optimize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWinRateCountsFailuresAsNonAlerts(t *testing.T) {
	t.Parallel()

	cfg := testConfig("A", "B")
	cfg.Alerts.ConfidenceThreshold = 0

	scanner := &Scanner{Config: cfg}
	base := map[string]*market.Series{
		"A": trendingSeries("A", 20),
		"B": market.NewSeries("B", nil), // evaluation fails on empty
	}

	ps := ParamSet{RSI: 2, EMAShort: 2, EMALong: 3, BBWindow: 3, BBStd: 1}
	assert.InDelta(t, 0.5, scanner.winRate(base, ps), 1e-9)

	assert.Equal(t, 0.0, scanner.winRate(map[string]*market.Series{}, ps))
}
