package market

import (
	"fmt"
	"time"
)

// Series is an ordered, time-indexed sequence of bars plus named derived
// columns aligned 1:1 with the bar index. Bars are never mutated once
// added; indicator engines only append new columns.
type Series struct {
	Symbol string

	bars  []Bar
	cols  map[string][]Float
	order []string // column insertion order
}

// NewSeries builds a series over the given bars. Bars are expected to be
// in ascending time order with unique timestamps; Validate reports
// violations.
func NewSeries(symbol string, bars []Bar) *Series {
	return &Series{
		Symbol: symbol,
		bars:   bars,
		cols:   make(map[string][]Float),
	}
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i.
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Bars returns the underlying bar slice. Callers must treat it as
// read-only.
func (s *Series) Bars() []Bar { return s.bars }

// Last returns the final bar, or false when the series is empty.
func (s *Series) Last() (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}

// Closes extracts the close of every bar.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}

// SetColumn attaches a derived column. The column must be aligned to the
// bar index.
func (s *Series) SetColumn(name string, vals []Float) error {
	if len(vals) != len(s.bars) {
		return fmt.Errorf("column %q: length %d does not match %d bars", name, len(vals), len(s.bars))
	}
	if _, exists := s.cols[name]; !exists {
		s.order = append(s.order, name)
	}
	s.cols[name] = vals
	return nil
}

// Column returns a derived column by name.
func (s *Series) Column(name string) ([]Float, bool) {
	c, ok := s.cols[name]
	return c, ok
}

// HasColumn reports whether a derived column exists.
func (s *Series) HasColumn(name string) bool {
	_, ok := s.cols[name]
	return ok
}

// Columns lists derived column names in insertion order.
func (s *Series) Columns() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// At returns the value of a derived column at index i. Missing columns
// and out-of-range indexes read as undefined.
func (s *Series) At(name string, i int) Float {
	c, ok := s.cols[name]
	if !ok || i < 0 || i >= len(c) {
		return Float{}
	}
	return c[i]
}

// Prefix returns a read-only view of the first n bars, with all derived
// columns truncated to match. The view shares backing arrays with the
// parent; do not set columns on it.
func (s *Series) Prefix(n int) *Series {
	if n > len(s.bars) {
		n = len(s.bars)
	}
	if n < 0 {
		n = 0
	}
	view := &Series{
		Symbol: s.Symbol,
		bars:   s.bars[:n],
		cols:   make(map[string][]Float, len(s.cols)),
		order:  s.order,
	}
	for name, c := range s.cols {
		view.cols[name] = c[:n]
	}
	return view
}

// Since returns the sub-series of bars at or after t, columns included.
// Bars are time-ordered, so this is a single cut point.
func (s *Series) Since(t time.Time) *Series {
	start := len(s.bars)
	for i, b := range s.bars {
		if !b.Time.Before(t) {
			start = i
			break
		}
	}
	view := &Series{
		Symbol: s.Symbol,
		bars:   s.bars[start:],
		cols:   make(map[string][]Float, len(s.cols)),
		order:  s.order,
	}
	for name, c := range s.cols {
		view.cols[name] = c[start:]
	}
	return view
}

// Validate checks every bar plus the ordering invariant.
func (s *Series) Validate() error {
	for i, b := range s.bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !s.bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bars out of order at index %d (%s >= %s)",
				i, s.bars[i-1].Time.Format(time.RFC3339), b.Time.Format(time.RFC3339))
		}
	}
	return nil
}
