package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"AssetCompare/internal/model"

	"go.uber.org/zap"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoData is returned when a column has no observed cell to plot.
	ErrNoData = errors.New("no data to plot")
	// ErrUnknownColumn is returned when a scatter axis names a column not in the table.
	ErrUnknownColumn = errors.New("unknown column")
)

// Legend placement presets for the dual-axis chart.
var (
	StackedLegends = [2]Anchor{UpperLeft, LowerLeft}
	SplitLegends   = [2]Anchor{UpperLeft, UpperRight}
)

// Options controls colours, legend placement and figure size.
type Options struct {
	LeftColor   color.Color
	RightColor  color.Color
	LegendLeft  Anchor
	LegendRight Anchor
	Width       vg.Length
	Height      vg.Length
}

// DefaultOptions draws blue over orange with stacked legends on a 12x6 inch canvas.
func DefaultOptions() Options {
	return Options{
		LeftColor:   namedColors["blue"],
		RightColor:  namedColors["orange"],
		LegendLeft:  StackedLegends[0],
		LegendRight: StackedLegends[1],
		Width:       12 * vg.Inch,
		Height:      6 * vg.Inch,
	}
}

// WithLegends returns a copy of o using the given anchor pair.
func (o Options) WithLegends(anchors [2]Anchor) Options {
	o.LegendLeft, o.LegendRight = anchors[0], anchors[1]
	return o
}

// Renderer builds figures from price tables and presents them on a Surface.
type Renderer struct {
	Opts Options
	Log  *zap.Logger
}

// NewRenderer creates a new Renderer. A nil logger discards logs.
func NewRenderer(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Opts: opts, Log: log}
}

// DualAxis draws both columns over time, A against the left axis and B against
// the right, and shows the figure on s. The figure is returned even when s fails.
func (r *Renderer) DualAxis(ctx context.Context, s Surface, t *model.PriceTable) (*Figure, error) {
	fig, err := r.DualAxisFigure(t)
	if err != nil {
		return nil, err
	}
	return fig, r.show(ctx, s, fig)
}

// DualAxisFigure builds the dual-axis time-series figure without presenting it.
func (r *Renderer) DualAxisFigure(t *model.PriceTable) (*Figure, error) {
	a, b := t.Name(0), t.Name(1)
	left, err := timeSeries(t, 0)
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", a, err)
	}
	right, err := timeSeries(t, 1)
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", b, err)
	}
	return &Figure{
		Name:     "timeseries_" + slug(a) + "_" + slug(b),
		Title:    fmt.Sprintf("Price Movement of %s and %s", a, b),
		XLabel:   "Date",
		YLabel:   a,
		Y2Label:  b,
		TimeAxis: true,
		Width:    r.Opts.Width,
		Height:   r.Opts.Height,
		Layers: []Layer{
			{Name: a, Axis: LeftAxis, Style: StyleLine, Color: r.Opts.LeftColor, Points: left},
			{Name: b, Axis: RightAxis, Style: StyleLine, Color: r.Opts.RightColor, Points: right},
		},
		Legends: []Legend{
			{Anchor: r.Opts.LegendLeft, Entries: []string{a}},
			{Anchor: r.Opts.LegendRight, Entries: []string{b}},
		},
	}, nil
}

// Scatter plots column yCol against column xCol and shows the figure on s.
func (r *Renderer) Scatter(ctx context.Context, s Surface, t *model.PriceTable, yCol, xCol string) (*Figure, error) {
	fig, err := r.ScatterFigure(t, yCol, xCol)
	if err != nil {
		return nil, err
	}
	return fig, r.show(ctx, s, fig)
}

// ScatterFigure builds the scatter figure without presenting it. Rows missing
// either value are skipped.
func (r *Renderer) ScatterFigure(t *model.PriceTable, yCol, xCol string) (*Figure, error) {
	yi := t.ColumnIndex(yCol)
	if yi < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, yCol)
	}
	xi := t.ColumnIndex(xCol)
	if xi < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, xCol)
	}
	pts := make(plotter.XYs, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		x, y := t.Value(xi, row), t.Value(yi, row)
		if model.IsMissing(x) || model.IsMissing(y) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, ErrNoData
	}
	name := yCol + " vs " + xCol
	return &Figure{
		Name:   "scatter_" + slug(yCol) + "_" + slug(xCol),
		Title:  fmt.Sprintf("%s and %s Price Scatterplot", yCol, xCol),
		XLabel: xCol + " Price ($)",
		YLabel: yCol + " Price ($)",
		Width:  r.Opts.Width,
		Height: r.Opts.Height,
		Layers: []Layer{
			{Name: name, Axis: LeftAxis, Style: StylePoints, Color: r.Opts.LeftColor, Points: pts},
		},
	}, nil
}

func (r *Renderer) show(ctx context.Context, s Surface, fig *Figure) error {
	r.Log.Debug("showing figure",
		zap.String("figure", fig.Name),
		zap.Int("layers", len(fig.Layers)))
	if err := s.Show(ctx, fig); err != nil {
		return fmt.Errorf("show %s: %w", fig.Name, err)
	}
	return nil
}

// timeSeries returns the observed cells of column col as (unix seconds, price).
func timeSeries(t *model.PriceTable, col int) (plotter.XYs, error) {
	pts := make(plotter.XYs, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		v := t.Value(col, row)
		if model.IsMissing(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(t.Date(row).Unix()), Y: v})
	}
	if len(pts) == 0 {
		return nil, ErrNoData
	}
	return pts, nil
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, s)
}
