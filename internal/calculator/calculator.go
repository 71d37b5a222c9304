package calculator

import (
	"errors"
	"fmt"
	"io"

	"AssetCompare/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Precision is the number of decimal places shown in report lines.
const Precision = 5

// Calculator computes correlations and writes one human-readable line per result.
type Calculator struct {
	Out io.Writer
	Log *zap.Logger
}

// NewCalculator creates a Calculator writing report lines to out. A nil logger discards logs.
func NewCalculator(out io.Writer, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{Out: out, Log: log}
}

// Pearson computes and reports the Pearson correlation of t.
func (c *Calculator) Pearson(t *model.PriceTable) (model.Correlation, error) {
	v, err := Pearson(t)
	return c.report(t, model.MethodPearson, v, err)
}

// QuantDare computes and reports the QuantDare correlation of t.
func (c *Calculator) QuantDare(t *model.PriceTable) (model.Correlation, error) {
	v, err := QuantDare(t)
	return c.report(t, model.MethodQuantDare, v, err)
}

// All runs both statistics. Undefined results are kept in the report; any other error aborts.
func (c *Calculator) All(t *model.PriceTable) ([]model.Correlation, error) {
	var out []model.Correlation
	for _, fn := range []func(*model.PriceTable) (model.Correlation, error){c.Pearson, c.QuantDare} {
		res, err := fn(t)
		var ue *UndefinedError
		if err != nil && !errors.As(err, &ue) {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Report runs both statistics over t and bundles them with the table's shape.
func (c *Calculator) Report(t *model.PriceTable, rng model.DateRange) (model.Report, error) {
	corrs, err := c.All(t)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{
		SeriesA:      t.Name(0),
		SeriesB:      t.Name(1),
		Range:        rng.String(),
		Rows:         t.Len(),
		Correlations: corrs,
	}, nil
}

func (c *Calculator) report(t *model.PriceTable, m model.Method, v float64, err error) (model.Correlation, error) {
	res := model.Correlation{Method: m, SeriesA: t.Name(0), SeriesB: t.Name(1), Value: v}
	var ue *UndefinedError
	if errors.As(err, &ue) {
		res.Value = 0
		res.Undefined = fmt.Sprintf("%v in series %s", ue.Reason, ue.Series)
		c.Log.Warn("correlation undefined",
			zap.String("method", string(m)),
			zap.String("series", ue.Series),
			zap.Error(ue.Reason))
	}
	if c.Out != nil {
		if _, werr := fmt.Fprintln(c.Out, FormatLine(res)); werr != nil {
			c.Log.Error("write correlation line", zap.Error(werr))
		}
	}
	return res, err
}

// FormatLine renders a correlation as
// "Pearson correlation of A and B: 0.94491" or "... : undefined (zero variance in series A)".
func FormatLine(c model.Correlation) string {
	if c.Undefined != "" {
		return fmt.Sprintf("%s correlation of %s and %s: undefined (%s)", c.Method, c.SeriesA, c.SeriesB, c.Undefined)
	}
	return fmt.Sprintf("%s correlation of %s and %s: %s", c.Method, c.SeriesA, c.SeriesB, Round(c.Value))
}

// Round formats v rounded to Precision decimal places.
func Round(v float64) string {
	return decimal.NewFromFloat(v).Round(Precision).String()
}

// RoundFloat rounds v to Precision decimal places.
func RoundFloat(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(Precision).Float64()
	return f
}
