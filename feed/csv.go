package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tradewatch/market"
)

// CSVProvider reads bar files named <symbol>_<timeframe>.csv from a
// directory. Expected columns: time,open,high,low,close,volume with an
// RFC3339 timestamp. Malformed rows are dropped, matching the
// NaN-dropping behavior of live providers.
type CSVProvider struct {
	Dir string
}

// NewCSV creates a provider rooted at dir.
func NewCSV(dir string) *CSVProvider {
	return &CSVProvider{Dir: dir}
}

// fileSafe maps symbols like "EURUSD=X" onto filesystem-safe names.
var fileSafe = strings.NewReplacer("=", "_", "/", "_", ":", "_")

func (p *CSVProvider) GetOHLCV(ctx context.Context, symbol, timeframe string) (*market.Series, error) {
	path := filepath.Join(p.Dir, fmt.Sprintf("%s_%s.csv", fileSafe.Replace(symbol), timeframe))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bar file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var bars []market.Bar
	first := true
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		// Tolerate a header row.
		if first {
			first = false
			if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		bar, ok := parseBarRow(row)
		if !ok {
			log.Printf("[WARN] feed: dropping malformed row in %s: %v", path, row)
			continue
		}
		bars = append(bars, bar)
	}

	s := market.NewSeries(symbol, bars)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseBarRow(row []string) (market.Bar, bool) {
	if len(row) < 6 {
		return market.Bar{}, false
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return market.Bar{}, false
	}

	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return market.Bar{}, false
		}
		vals[i] = v
	}

	bar := market.Bar{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}
	if bar.Validate() != nil {
		return market.Bar{}, false
	}
	return bar, true
}
