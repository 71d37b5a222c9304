package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func days(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func TestNewPriceTable_Validation(t *testing.T) {
	if _, err := NewPriceTable([2]string{"A", "B"}, days(3), []float64{1, 2}, []float64{1, 2, 3}); !errors.Is(err, ErrColumnLength) {
		t.Errorf("expected ErrColumnLength, got %v", err)
	}
	d := days(3)
	d[2] = d[0]
	if _, err := NewPriceTable([2]string{"A", "B"}, d, []float64{1, 2, 3}, []float64{1, 2, 3}); !errors.Is(err, ErrUnordered) {
		t.Errorf("expected ErrUnordered, got %v", err)
	}
}

func TestFillForward_Scenario(t *testing.T) {
	nan := math.NaN()
	tbl, err := NewPriceTable([2]string{"A", "B"}, days(5),
		[]float64{10, nan, 12, nan, 14},
		[]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filled := tbl.FillForward()
	want := []float64{10, 10, 12, 12, 14}
	for i, v := range filled.Column(0) {
		if v != want[i] {
			t.Errorf("row %d: expected %.0f, got %v", i, want[i], v)
		}
	}
	if !IsMissing(tbl.Value(0, 1)) {
		t.Error("FillForward must not modify the source table")
	}
}

func TestFillForward_LeadingMissingStays(t *testing.T) {
	nan := math.NaN()
	tbl, _ := NewPriceTable([2]string{"A", "B"}, days(4),
		[]float64{nan, nan, 3, nan},
		[]float64{1, nan, nan, 4})
	filled := tbl.FillForward()
	if filled.LeadingMissing(0) != 2 {
		t.Errorf("expected 2 leading missing rows, got %d", filled.LeadingMissing(0))
	}
	if filled.Value(0, 3) != 3 {
		t.Errorf("expected trailing gap filled with 3, got %v", filled.Value(0, 3))
	}
	if filled.Value(1, 1) != 1 || filled.Value(1, 2) != 1 {
		t.Errorf("expected column B gaps filled with 1, got %v", filled.Column(1))
	}
}

func TestFillForward_DenseIsNoop(t *testing.T) {
	tbl, _ := NewPriceTable([2]string{"A", "B"}, days(4),
		[]float64{4, 3, 2, 1},
		[]float64{1, 2, 3, 4})
	if !tbl.FillForward().Equal(tbl) {
		t.Error("fill-forward on dense data should be a no-op")
	}
	if !tbl.FillForward().FillForward().Equal(tbl.FillForward()) {
		t.Error("fill-forward should be idempotent")
	}
}

func TestEqual_MissingCells(t *testing.T) {
	nan := math.NaN()
	a, _ := NewPriceTable([2]string{"A", "B"}, days(2), []float64{nan, 1}, []float64{1, 2})
	b, _ := NewPriceTable([2]string{"A", "B"}, days(2), []float64{nan, 1}, []float64{1, 2})
	c, _ := NewPriceTable([2]string{"A", "C"}, days(2), []float64{nan, 1}, []float64{1, 2})
	if !a.Equal(b) {
		t.Error("tables with missing cells in the same place should be equal")
	}
	if a.Equal(c) {
		t.Error("tables with different names should differ")
	}
	if a.ColumnIndex("B") != 1 || a.ColumnIndex("Z") != -1 {
		t.Error("unexpected ColumnIndex result")
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2020-01-02", "2020-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "2020-01-02..2020-03-04" {
		t.Errorf("unexpected range string %q", r.String())
	}
	if _, err := ParseDateRange("2020/01/02", "2020-03-04"); err == nil {
		t.Error("expected parse error")
	}
}
