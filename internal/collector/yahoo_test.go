package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"AssetCompare/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-04..06 14:30 UTC, US market open.
const yahooBody = `{"chart":{"result":[{"meta":{"gmtoffset":-18000},
"timestamp":[1709562600,1709649000,1709735400],
"indicators":{"quote":[{"close":[100.5,null,102.5]}],
"adjclose":[{"adjclose":[99.5,null,101.5]}]}}],"error":null}}`

func TestYahooFetcher_ParsesAdjClose(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		w.Write([]byte(yahooBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL

	rng := model.DateRange{Start: day(4), End: day(6)}
	points, err := f.FetchDailyAdjClose(context.Background(), "SPX", rng)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/%5EGSPC", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Contains(t, gotQuery, "period2=1709769600") // 2024-03-07, end is inclusive

	require.Len(t, points, 3)
	assert.Equal(t, day(4), points[0].Date)
	assert.Equal(t, 99.5, points[0].AdjClose)
	assert.True(t, model.IsMissing(points[1].AdjClose))
	assert.Equal(t, 101.5, points[2].AdjClose)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", time.Second)
	f.BaseURL = srv.URL
	_, err := f.FetchDailyAdjClose(context.Background(), "NOPE", model.DateRange{Start: day(1), End: day(2)})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "delisted"))
}

func TestYahooFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher("", time.Second)
	f.BaseURL = srv.URL
	_, err := f.FetchDailyAdjClose(context.Background(), "AAPL", model.DateRange{Start: day(1), End: day(2)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestVsTraderFetcher_PrefersAdjClose(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from"))
		w.Write([]byte(`[{"timestamp":1709683200,"close":11,"adj_close":10},{"timestamp":1709596800,"close":9}]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "secret", "", time.Second)
	points, err := f.FetchDailyAdjClose(context.Background(), "AAA", model.DateRange{Start: day(1), End: day(10)})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	require.Len(t, points, 2)
	assert.Equal(t, day(5), points[0].Date)
	assert.Equal(t, 9.0, points[0].AdjClose)
	assert.Equal(t, 10.0, points[1].AdjClose)
}
