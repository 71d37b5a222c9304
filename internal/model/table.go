package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrColumnLength is returned when a column does not match the date index.
	ErrColumnLength = errors.New("column length does not match date index")
	// ErrUnordered is returned when the date index is not strictly increasing.
	ErrUnordered = errors.New("dates must be strictly increasing")
)

// Missing is the marker stored in a cell without an observation.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// PriceTable is a date-indexed table of exactly two price columns.
// Tables are treated as immutable: every transformation returns a new table.
type PriceTable struct {
	names  [2]string
	dates  []time.Time
	values [2][]float64
}

// NewPriceTable builds a table from a date index and two columns. The slices are copied.
func NewPriceTable(names [2]string, dates []time.Time, a, b []float64) (*PriceTable, error) {
	if len(a) != len(dates) {
		return nil, fmt.Errorf("column %q: %w", names[0], ErrColumnLength)
	}
	if len(b) != len(dates) {
		return nil, fmt.Errorf("column %q: %w", names[1], ErrColumnLength)
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("row %d (%s): %w", i, dates[i].Format(DateLayout), ErrUnordered)
		}
	}
	t := &PriceTable{
		names: names,
		dates: append([]time.Time(nil), dates...),
	}
	t.values[0] = append([]float64(nil), a...)
	t.values[1] = append([]float64(nil), b...)
	return t, nil
}

// Len returns the number of rows.
func (t *PriceTable) Len() int { return len(t.dates) }

// Names returns both column names.
func (t *PriceTable) Names() [2]string { return t.names }

// Name returns the name of column i (0 or 1).
func (t *PriceTable) Name(i int) string { return t.names[i] }

// ColumnIndex returns the index of the column with the given name, or -1.
func (t *PriceTable) ColumnIndex(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Dates returns a copy of the date index.
func (t *PriceTable) Dates() []time.Time { return append([]time.Time(nil), t.dates...) }

// Date returns the date of a row.
func (t *PriceTable) Date(row int) time.Time { return t.dates[row] }

// Column returns a copy of column i.
func (t *PriceTable) Column(i int) []float64 { return append([]float64(nil), t.values[i]...) }

// Value returns the cell at column i and the given row.
func (t *PriceTable) Value(i, row int) float64 { return t.values[i][row] }

// LeadingMissing returns how many rows precede the first observation in column i.
func (t *PriceTable) LeadingMissing(i int) int {
	for row, v := range t.values[i] {
		if !IsMissing(v) {
			return row
		}
	}
	return len(t.values[i])
}

// FillForward returns a new table where every missing cell takes the most recent
// observed value in the same column. Cells before a column's first observation stay missing.
func (t *PriceTable) FillForward() *PriceTable {
	out := t.Clone()
	for i := range out.values {
		last := Missing
		for row, v := range out.values[i] {
			if IsMissing(v) {
				out.values[i][row] = last
				continue
			}
			last = v
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *PriceTable) Clone() *PriceTable {
	c := &PriceTable{
		names: t.names,
		dates: append([]time.Time(nil), t.dates...),
	}
	c.values[0] = append([]float64(nil), t.values[0]...)
	c.values[1] = append([]float64(nil), t.values[1]...)
	return c
}

// Equal reports whether both tables hold the same names, dates and cells.
// Two missing cells compare equal.
func (t *PriceTable) Equal(o *PriceTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.names != o.names || len(t.dates) != len(o.dates) {
		return false
	}
	for row := range t.dates {
		if !t.dates[row].Equal(o.dates[row]) {
			return false
		}
		for i := range t.values {
			a, b := t.values[i][row], o.values[i][row]
			if IsMissing(a) != IsMissing(b) || (!IsMissing(a) && a != b) {
				return false
			}
		}
	}
	return true
}
