package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"AssetCompare/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Axis selects the vertical axis a layer is drawn against.
type Axis int

const (
	LeftAxis Axis = iota
	RightAxis
)

// Style selects how a layer is drawn.
type Style int

const (
	StyleLine Style = iota
	StylePoints
)

const (
	rightGutter = vg.Length(72)
	tickPad     = vg.Length(3)
)

// Layer is one plotted series.
type Layer struct {
	Name   string
	Axis   Axis
	Style  Style
	Color  color.Color
	Points plotter.XYs
}

// Legend places the named layers' entries in one corner of the data area.
type Legend struct {
	Anchor  Anchor
	Entries []string
}

// Figure is a complete chart description. It is built by a Renderer, handed to a
// Surface and returned to the caller; nothing about it is global.
type Figure struct {
	Name     string
	Title    string
	XLabel   string
	YLabel   string
	Y2Label  string
	TimeAxis bool
	Width    vg.Length
	Height   vg.Length
	Layers   []Layer
	Legends  []Legend
}

// Layer returns the layer with the given name.
func (f *Figure) Layer(name string) (Layer, bool) {
	for _, l := range f.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Draw renders the figure onto c. Layers on the right axis share the left plot's
// horizontal range and get their own axis drawn along the right edge.
func (f *Figure) Draw(c draw.Canvas) error {
	left := plot.New()
	left.Title.Text = f.Title
	left.X.Label.Text = f.XLabel
	left.Y.Label.Text = f.YLabel
	if f.TimeAxis {
		left.X.Tick.Marker = plot.TimeTicks{Format: model.DateLayout}
	}
	right := plot.New()
	right.Y.Label.Text = f.Y2Label

	thumbs := make(map[string]plot.Thumbnailer, len(f.Layers))
	var onRight []plot.Plotter
	for _, l := range f.Layers {
		p, th, err := l.plotter()
		if err != nil {
			return fmt.Errorf("layer %s: %w", l.Name, err)
		}
		thumbs[l.Name] = th
		if l.Axis == RightAxis {
			right.Add(p)
			onRight = append(onRight, p)
			continue
		}
		left.Add(p)
	}

	area := c
	if len(onRight) > 0 {
		left.X.Min = math.Min(left.X.Min, right.X.Min)
		left.X.Max = math.Max(left.X.Max, right.X.Max)
		area = draw.Crop(c, 0, -rightGutter, 0, 0)
	}
	left.Draw(area)
	data := left.DataCanvas(area)

	if len(onRight) > 0 {
		right.X.Min, right.X.Max = left.X.Min, left.X.Max
		if right.Y.Min == right.Y.Max {
			right.Y.Min--
			right.Y.Max++
		}
		for _, p := range onRight {
			p.Plot(data, right)
		}
		drawRightAxis(c, data, right.Y)
	}

	for _, spec := range f.Legends {
		leg := plot.NewLegend()
		leg.Top = spec.Anchor.top()
		leg.Left = spec.Anchor.left()
		for _, name := range spec.Entries {
			if th, ok := thumbs[name]; ok {
				leg.Add(name, th)
			}
		}
		leg.Draw(data)
	}
	return nil
}

// WriteTo encodes the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	img := vgimg.New(f.Width, f.Height)
	if err := f.Draw(draw.New(img)); err != nil {
		return 0, err
	}
	return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
}

func (l Layer) plotter() (plot.Plotter, plot.Thumbnailer, error) {
	if l.Style == StylePoints {
		s, err := plotter.NewScatter(l.Points)
		if err != nil {
			return nil, nil, err
		}
		s.GlyphStyle.Color = l.Color
		s.GlyphStyle.Radius = vg.Points(2.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		return s, s, nil
	}
	ln, err := plotter.NewLine(l.Points)
	if err != nil {
		return nil, nil, err
	}
	ln.LineStyle.Color = l.Color
	ln.LineStyle.Width = vg.Points(1.2)
	return ln, ln, nil
}

// drawRightAxis draws ax along the right edge of data, with tick labels and the
// rotated axis label in the gutter to its right.
func drawRightAxis(c, data draw.Canvas, ax plot.Axis) {
	x := data.Max.X
	c.StrokeLine2(ax.LineStyle, x, data.Min.Y, x, data.Max.Y)

	lbl := ax.Tick.Label
	lbl.XAlign = text.XLeft
	lbl.YAlign = text.YCenter

	var widest vg.Length
	for _, t := range ax.Tick.Marker.Ticks(ax.Min, ax.Max) {
		y := data.Y(ax.Norm(t.Value))
		if y < data.Min.Y || y > data.Max.Y {
			continue
		}
		length := ax.Tick.Length
		if t.IsMinor() {
			length /= 2
		}
		c.StrokeLine2(ax.Tick.LineStyle, x, y, x+length, y)
		if t.IsMinor() {
			continue
		}
		c.FillText(lbl, vg.Point{X: x + ax.Tick.Length + tickPad, Y: y}, t.Label)
		if w := lbl.Width(t.Label); w > widest {
			widest = w
		}
	}

	if ax.Label.Text == "" {
		return
	}
	name := ax.Label.TextStyle
	name.Rotation = math.Pi / 2
	name.XAlign = text.XCenter
	name.YAlign = text.YTop
	pt := vg.Point{X: x + ax.Tick.Length + 2*tickPad + widest, Y: (data.Min.Y + data.Max.Y) / 2}
	c.FillText(name, pt, ax.Label.Text)
}
