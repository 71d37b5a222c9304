package calculator

import (
	"errors"
	"fmt"
	"math"

	"AssetCompare/internal/model"
)

var (
	// ErrZeroVariance means a column is constant, so Pearson is undefined.
	ErrZeroVariance = errors.New("zero variance")
	// ErrZeroMagnitude means a column is all zeros, so QuantDare is undefined.
	ErrZeroMagnitude = errors.New("zero magnitude")
	// ErrNoObservations means a column has no observed values.
	ErrNoObservations = errors.New("no observations")
)

// UndefinedError reports a correlation that cannot be computed for the named series.
type UndefinedError struct {
	Method model.Method
	Series string
	Reason error
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s correlation: %v in series %s", e.Method, e.Reason, e.Series)
}

func (e *UndefinedError) Unwrap() error { return e.Reason }

// Pearson computes the mean-centered correlation of the two columns:
//
//	sum((x-mean(x))*(y-mean(y))) / sqrt(sum((x-mean(x))^2) * sum((y-mean(y))^2))
//
// Missing cells are skipped: each mean uses that column's observed cells, and every
// sum drops the terms touching a missing cell.
func Pearson(t *model.PriceTable) (float64, error) {
	x, y := t.Column(0), t.Column(1)

	mx, ok := mean(x)
	if !ok {
		return 0, undefined(model.MethodPearson, t.Name(0), ErrNoObservations)
	}
	my, ok := mean(y)
	if !ok {
		return 0, undefined(model.MethodPearson, t.Name(1), ErrNoObservations)
	}

	var numer, sx, sy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		if !model.IsMissing(dx) {
			sx += dx * dx
		}
		if !model.IsMissing(dy) {
			sy += dy * dy
		}
		if !model.IsMissing(dx) && !model.IsMissing(dy) {
			numer += dx * dy
		}
	}

	if constant(x) {
		return 0, undefined(model.MethodPearson, t.Name(0), ErrZeroVariance)
	}
	if constant(y) {
		return 0, undefined(model.MethodPearson, t.Name(1), ErrZeroVariance)
	}
	return numer / math.Sqrt(sx*sy), nil
}

// QuantDare computes sum(x*y) / sqrt(sum(x^2) * sum(y^2)) without removing the means.
// It is the cosine similarity of the raw columns, meant to be applied to return series.
// It does not convert prices to returns and is not bounded to [-1, 1] in general use.
func QuantDare(t *model.PriceTable) (float64, error) {
	x, y := t.Column(0), t.Column(1)

	var numer, sx, sy float64
	var nx, ny int
	for i := range x {
		if !model.IsMissing(x[i]) {
			sx += x[i] * x[i]
			nx++
		}
		if !model.IsMissing(y[i]) {
			sy += y[i] * y[i]
			ny++
		}
		if !model.IsMissing(x[i]) && !model.IsMissing(y[i]) {
			numer += x[i] * y[i]
		}
	}

	switch {
	case nx == 0:
		return 0, undefined(model.MethodQuantDare, t.Name(0), ErrNoObservations)
	case ny == 0:
		return 0, undefined(model.MethodQuantDare, t.Name(1), ErrNoObservations)
	case sx == 0:
		return 0, undefined(model.MethodQuantDare, t.Name(0), ErrZeroMagnitude)
	case sy == 0:
		return 0, undefined(model.MethodQuantDare, t.Name(1), ErrZeroMagnitude)
	}
	return numer / math.Sqrt(sx*sy), nil
}

// mean averages the observed values. ok is false when nothing was observed.
func mean(values []float64) (m float64, ok bool) {
	sum, n := 0.0, 0
	for _, v := range values {
		if model.IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// constant reports whether every observed value equals the first one.
func constant(values []float64) bool {
	first, seen := 0.0, false
	for _, v := range values {
		if model.IsMissing(v) {
			continue
		}
		if !seen {
			first, seen = v, true
			continue
		}
		if v != first {
			return false
		}
	}
	return true
}

func undefined(m model.Method, series string, reason error) error {
	return &UndefinedError{Method: m, Series: series, Reason: reason}
}
