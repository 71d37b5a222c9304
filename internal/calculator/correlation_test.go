package calculator

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"AssetCompare/internal/model"
)

const tolerance = 1e-9

func table(t *testing.T, a, b []float64) *model.PriceTable {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, len(a))
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	tbl, err := model.NewPriceTable([2]string{"AAA", "BBB"}, dates, a, b)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

func TestPearson_Identical(t *testing.T) {
	x := []float64{1, 3, 2, 5, 4}
	r, err := Pearson(table(t, x, x))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r-1) > tolerance {
		t.Errorf("expected 1.0, got %v", r)
	}
}

func TestPearson_Negated(t *testing.T) {
	x := []float64{1, 3, 2, 5, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = -v
	}
	r, err := Pearson(table(t, x, y))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r+1) > tolerance {
		t.Errorf("expected -1.0, got %v", r)
	}
}

func TestPearson_ZeroVariance(t *testing.T) {
	_, err := Pearson(table(t, []float64{7, 7, 7}, []float64{1, 2, 3}))
	if !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("expected ErrZeroVariance, got %v", err)
	}
	var ue *UndefinedError
	if !errors.As(err, &ue) || ue.Series != "AAA" {
		t.Errorf("expected undefined error naming AAA, got %v", err)
	}

	_, err = Pearson(table(t, []float64{1, 2, 3}, []float64{4, 4, 4}))
	if !errors.As(err, &ue) || ue.Series != "BBB" {
		t.Errorf("expected undefined error naming BBB, got %v", err)
	}
}

func TestPearson_ZeroVarianceInexactConstants(t *testing.T) {
	nan := math.NaN()
	for _, c := range []float64{0.1, 101.37, 187.44, 4769.83} {
		x := []float64{c, c, c, c, c, c, c}
		y := []float64{1, 2, 3, 4, 5, 6, 7}
		if r, err := Pearson(table(t, x, y)); !errors.Is(err, ErrZeroVariance) {
			t.Errorf("constant %v in AAA: expected ErrZeroVariance, got r=%v err=%v", c, r, err)
		}
		if r, err := Pearson(table(t, y, x)); !errors.Is(err, ErrZeroVariance) {
			t.Errorf("constant %v in BBB: expected ErrZeroVariance, got r=%v err=%v", c, r, err)
		}
	}

	// missing cells do not break constancy
	_, err := Pearson(table(t, []float64{nan, 187.44, 187.44, nan}, []float64{1, 2, 3, 4}))
	if !errors.Is(err, ErrZeroVariance) {
		t.Errorf("expected ErrZeroVariance with missing cells, got %v", err)
	}
}

func TestPearson_ForwardFilledScenario(t *testing.T) {
	nan := math.NaN()
	raw := table(t, []float64{10, nan, 12, nan, 14}, []float64{1, 2, 3, 4, 5})
	r, err := Pearson(raw.FillForward())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10 / math.Sqrt(112)
	if math.Abs(r-want) > tolerance {
		t.Errorf("expected %v, got %v", want, r)
	}
	if got := Round(r); got != "0.94491" {
		t.Errorf("expected 0.94491 after rounding, got %s", got)
	}
}

func TestPearson_SkipsLeadingMissing(t *testing.T) {
	nan := math.NaN()
	withGap := table(t, []float64{nan, 2, 4, 6}, []float64{9, 1, 2, 3})
	dense := table(t, []float64{2, 4, 6}, []float64{1, 2, 3})
	got, err := Pearson(withGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got >= 1 || got <= 0 {
		t.Errorf("expected a positive correlation below 1 (mean of B includes the unmatched row), got %v", got)
	}
	if r, _ := Pearson(dense); math.Abs(r-1) > tolerance {
		t.Errorf("expected dense subset to be perfectly correlated, got %v", r)
	}
}

func TestQuantDare_Orthogonal(t *testing.T) {
	r, err := QuantDare(table(t, []float64{1, 0, -1, 0}, []float64{0, 1, 0, -1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != 0 {
		t.Errorf("expected 0 for orthogonal series, got %v", r)
	}
}

func TestQuantDare_NoMeanRemoval(t *testing.T) {
	// Shifted copies are perfectly Pearson-correlated but not parallel vectors.
	x := []float64{1, 2, 3}
	y := []float64{101, 102, 103}
	p, _ := Pearson(table(t, x, y))
	q, err := QuantDare(table(t, x, y))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-1) > tolerance {
		t.Errorf("expected pearson 1, got %v", p)
	}
	want := (101 + 204 + 309) / math.Sqrt(14*(101*101+102*102+103*103))
	if math.Abs(q-want) > tolerance {
		t.Errorf("expected %v, got %v", want, q)
	}
}

func TestQuantDare_ZeroMagnitude(t *testing.T) {
	_, err := QuantDare(table(t, []float64{0, 0, 0}, []float64{1, 2, 3}))
	if !errors.Is(err, ErrZeroMagnitude) {
		t.Errorf("expected ErrZeroMagnitude, got %v", err)
	}
	nan := math.NaN()
	_, err = QuantDare(table(t, []float64{1, 2}, []float64{nan, nan}))
	if !errors.Is(err, ErrNoObservations) {
		t.Errorf("expected ErrNoObservations, got %v", err)
	}
}

func TestCalculator_ReportsLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewCalculator(&buf, nil)
	nan := math.NaN()
	tbl := table(t, []float64{10, nan, 12, nan, 14}, []float64{1, 2, 3, 4, 5}).FillForward()

	res, err := c.Pearson(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != model.MethodPearson || res.SeriesA != "AAA" || res.SeriesB != "BBB" {
		t.Errorf("unexpected result %+v", res)
	}
	line := strings.TrimSpace(buf.String())
	if line != "Pearson correlation of AAA and BBB: 0.94491" {
		t.Errorf("unexpected line %q", line)
	}
}

func TestCalculator_AllKeepsUndefined(t *testing.T) {
	var buf bytes.Buffer
	c := NewCalculator(&buf, nil)
	res, err := c.All(table(t, []float64{3, 3, 3}, []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if res[0].Undefined != "zero variance in series AAA" {
		t.Errorf("unexpected undefined reason %q", res[0].Undefined)
	}
	if res[1].Undefined != "" {
		t.Errorf("quantdare should be defined, got %q", res[1].Undefined)
	}
	if !strings.Contains(buf.String(), "Pearson correlation of AAA and BBB: undefined (zero variance in series AAA)") {
		t.Errorf("missing undefined line in %q", buf.String())
	}
}

func TestCalculator_Report(t *testing.T) {
	tbl := table(t, []float64{10, 11, 12}, []float64{1, 2, 4})
	rng := model.DateRange{Start: tbl.Date(0), End: tbl.Date(2)}
	rep, err := NewCalculator(nil, nil).Report(tbl, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.SeriesA != "AAA" || rep.SeriesB != "BBB" || rep.Rows != 3 || len(rep.Correlations) != 2 {
		t.Errorf("unexpected report %+v", rep)
	}
	if rep.Range != rng.String() {
		t.Errorf("range = %q, want %q", rep.Range, rng.String())
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(0.9449111825230679); got != 0.94491 {
		t.Errorf("RoundFloat = %v", got)
	}
	if got := Round(-1); got != "-1" {
		t.Errorf("Round(-1) = %q", got)
	}
}
