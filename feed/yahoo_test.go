package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yahooServer(t *testing.T, status int, body string) *YahooProvider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return &YahooProvider{Client: srv.Client(), BaseURL: srv.URL}
}

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1709251200, 1709254800, 1709258400],
      "indicators": {
        "quote": [{
          "open":   [100, null, 102],
          "high":   [105, null, 107],
          "low":    [99,  null, 101],
          "close":  [102, null, 105],
          "volume": [1000, null, 1100]
        }]
      }
    }],
    "error": null
  }
}`

func TestYahooGetOHLCV(t *testing.T) {
	t.Parallel()

	p := yahooServer(t, http.StatusOK, chartBody)
	s, err := p.GetOHLCV(context.Background(), "BTC-USD", "1h")
	require.NoError(t, err)

	// the null middle bar is dropped
	require.Equal(t, 2, s.Len())
	assert.InDelta(t, 102, s.Bar(0).Close, 1e-9)
	assert.InDelta(t, 105, s.Bar(1).Close, 1e-9)
	assert.InDelta(t, 1100, s.Bar(1).Volume, 1e-9)
	assert.True(t, s.Bar(0).Time.Before(s.Bar(1).Time))
}

func TestYahooAPIError(t *testing.T) {
	t.Parallel()

	p := yahooServer(t, http.StatusOK, `{
  "chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}
}`)
	_, err := p.GetOHLCV(context.Background(), "NOPE", "1h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooHTTPError(t *testing.T) {
	t.Parallel()

	p := yahooServer(t, http.StatusTooManyRequests, "rate limited")
	_, err := p.GetOHLCV(context.Background(), "BTC-USD", "1h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestYahooEmptyResult(t *testing.T) {
	t.Parallel()

	p := yahooServer(t, http.StatusOK, `{"chart": {"result": [], "error": null}}`)
	_, err := p.GetOHLCV(context.Background(), "BTC-USD", "1h")
	assert.Error(t, err)
}

func TestYahooBadJSON(t *testing.T) {
	t.Parallel()

	p := yahooServer(t, http.StatusOK, "<html>nope</html>")
	_, err := p.GetOHLCV(context.Background(), "BTC-USD", "1h")
	assert.Error(t, err)
}

func TestRangeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7d", rangeFor("5m"))
	assert.Equal(t, "1mo", rangeFor("1h"))
	assert.Equal(t, "1y", rangeFor("1d"))
	assert.Equal(t, "2y", rangeFor("1wk"))
	assert.Equal(t, "1mo", rangeFor("weird"))
}
