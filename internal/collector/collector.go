package collector

import (
	"context"
	"sort"
	"time"

	"AssetCompare/internal/model"

	"go.uber.org/zap"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PricePoint
	Err    error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyAdjClose(_ context.Context, ticker string, rng model.DateRange) ([]model.PricePoint, error) {
	m.Calls = append(m.Calls, ticker)
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.PricePoint
	for _, p := range m.Series[ticker] {
		if p.Date.Before(rng.Start) || p.Date.After(rng.End) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// FetchTable requests both tickers and outer-joins them on calendar date.
// Fetch errors are returned as-is.
func FetchTable(ctx context.Context, f Fetcher, tickerA, tickerB string, rng model.DateRange) (*model.PriceTable, error) {
	a, err := f.FetchDailyAdjClose(ctx, tickerA, rng)
	if err != nil {
		return nil, err
	}
	b, err := f.FetchDailyAdjClose(ctx, tickerB, rng)
	if err != nil {
		return nil, err
	}
	return JoinSeries([2]string{tickerA, tickerB}, a, b)
}

// JoinSeries builds a table over the union of both series' dates. A date present in
// only one series leaves the other column missing on that row.
func JoinSeries(names [2]string, a, b []model.PricePoint) (*model.PriceTable, error) {
	cells := map[time.Time]*[2]float64{}
	put := func(col int, points []model.PricePoint) {
		for _, p := range points {
			day := model.Day(p.Date)
			row, ok := cells[day]
			if !ok {
				row = &[2]float64{model.Missing, model.Missing}
				cells[day] = row
			}
			row[col] = p.AdjClose
		}
	}
	put(0, a)
	put(1, b)

	dates := make([]time.Time, 0, len(cells))
	for d := range cells {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	colA := make([]float64, len(dates))
	colB := make([]float64, len(dates))
	for i, d := range dates {
		colA[i], colB[i] = cells[d][0], cells[d][1]
	}
	return model.NewPriceTable(names, dates, colA, colB)
}

// Aligner fetches two tickers and returns their forward-filled price table.
type Aligner struct {
	Fetcher Fetcher
	Log     *zap.Logger
}

// NewAligner creates a new Aligner. A nil logger discards logs.
func NewAligner(fetcher Fetcher, log *zap.Logger) *Aligner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aligner{Fetcher: fetcher, Log: log}
}

// Align fetches tickerA and tickerB over rng and forward-fills gaps per column.
// Errors from the fetcher are returned unchanged.
func (a *Aligner) Align(ctx context.Context, tickerA, tickerB string, rng model.DateRange) (*model.PriceTable, error) {
	raw, err := FetchTable(ctx, a.Fetcher, tickerA, tickerB, rng)
	if err != nil {
		return nil, err
	}
	aligned := raw.FillForward()
	a.Log.Debug("aligned prices",
		zap.String("source", a.Fetcher.Name()),
		zap.String("ticker_a", tickerA),
		zap.String("ticker_b", tickerB),
		zap.Stringer("range", rng),
		zap.Int("rows", aligned.Len()),
		zap.Int("leading_missing_a", aligned.LeadingMissing(0)),
		zap.Int("leading_missing_b", aligned.LeadingMissing(1)))
	return aligned, nil
}
