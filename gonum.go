// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Font sizes and line widths, in points.
const (
	titleFontSize  = 14
	labelFontSize  = 13
	tickFontSize   = 12
	legendFontSize = 11
	lineWidth      = 2
	markerRadius   = 3.5
)

var gridColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 153} // 60% opacity

var gonumFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "jpg": true, "eps": true, "tif": true,
}

// GonumRenderer draws charts with gonum.org/v1/plot. The zero value is ready
// to use.
type GonumRenderer struct{}

var _ Renderer = GonumRenderer{}

// figure is a fully assembled plot together with the plotters drawn for each
// series, in series order.
type figure struct {
	plot  *plot.Plot
	lines []*plotter.Line
	marks []*plotter.Scatter
}

func (r GonumRenderer) Render(c *Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	format := imageFormat(c.Output)
	if !gonumFormats[format] {
		return unsupportedFormat(c, format)
	}
	fig, err := r.figure(c)
	if err != nil {
		return asOutputError(c, err)
	}
	w, h := c.size()
	image, err := fig.plot.WriterTo(w, h, format)
	if err != nil {
		return asOutputError(c, err)
	}
	return writeImage(c, c.Output, image)
}

func (GonumRenderer) figure(c *Chart) (*figure, error) {
	p := plot.New()
	p.BackgroundColor = color.White

	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(labelFontSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(labelFontSize)
	p.X.Tick.Label.Font.Size = vg.Points(tickFontSize)
	p.Y.Tick.Label.Font.Size = vg.Points(tickFontSize)

	if c.XScale == Log2 {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = log2Ticks{}
		// gonum pads an empty range by one unit, which can reach zero.
		if lo, hi := minMax(c.X); lo == hi {
			p.X.Min = lo / 2
			p.X.Max = hi * 2
		}
	}
	if c.XTickLabels != nil {
		xTicks := make([]plot.Tick, len(c.XTickLabels))
		for i := range c.XTickLabels {
			t := &xTicks[i]
			t.Label = c.XTickLabels[i]
			t.Value = c.X[i]
		}
		p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	}

	grid := plotter.NewGrid()
	for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		ls.Color = gridColor
		ls.Width = vg.Points(0.8)
		ls.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(grid)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Legend.TextStyle.Font.Size = vg.Points(legendFontSize)

	fig := &figure{plot: p}
	for i := range c.Series {
		s := &c.Series[i]
		xys := make(plotter.XYs, len(c.X))
		for j := range xys {
			xys[j].X = c.X[j]
			xys[j].Y = s.Values[j]
		}

		var thumbs []plot.Thumbnailer

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = s.Style.drawColor()
		line.LineStyle.Width = vg.Points(lineWidth)
		line.LineStyle.Dashes = dashes(s.Style.Line)
		if s.Style.Line == NoLine {
			line.LineStyle.Color = color.Transparent
		}
		p.Add(line)
		fig.lines = append(fig.lines, line)
		thumbs = append(thumbs, line)

		var marks *plotter.Scatter
		if s.Style.Marker != NoMarker {
			marks, err = plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			marks.GlyphStyle.Color = s.Style.drawColor()
			marks.GlyphStyle.Radius = vg.Points(markerRadius)
			marks.GlyphStyle.Shape = glyph(s.Style.Marker)
			p.Add(marks)
			thumbs = append(thumbs, marks)
		}
		fig.marks = append(fig.marks, marks)

		p.Legend.Add(s.Label(), thumbs...)
	}

	return fig, nil
}

func dashes(p LinePattern) []vg.Length {
	d := p.Dashes()
	if d == nil {
		return nil
	}
	out := make([]vg.Length, len(d))
	for i, v := range d {
		out[i] = vg.Points(v)
	}
	return out
}

func glyph(m Marker) draw.GlyphDrawer {
	switch m {
	case Square:
		return draw.BoxGlyph{}
	case Triangle:
		return draw.TriangleGlyph{}
	case Diamond:
		return diamondGlyph{}
	case Cross:
		return draw.CrossGlyph{}
	case Plus:
		return draw.PlusGlyph{}
	case Ring:
		return draw.RingGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

// diamondGlyph is a square standing on one corner.
type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + r, Y: pt.Y},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - r, Y: pt.Y},
	})
}
