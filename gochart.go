// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const goChartDPI = 100

// GoChartRenderer draws charts with github.com/wcharczuk/go-chart. It
// supports png and svg output. go-chart has no logarithmic X axis, so log2
// charts are drawn on log2-transformed coordinates with ticks labeled in the
// original units. Every marker other than NoMarker is drawn as a dot.
type GoChartRenderer struct{}

var _ Renderer = GoChartRenderer{}

func (r GoChartRenderer) Render(c *Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	var provider chart.RendererProvider
	switch format := imageFormat(c.Output); format {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return unsupportedFormat(c, format)
	}
	ch := r.chart(c)
	image := writerToFunc(func(w io.Writer) (int64, error) {
		cw := &countingWriter{w: w}
		err := ch.Render(provider, cw)
		return cw.n, err
	})
	return writeImage(c, c.Output, image)
}

func (GoChartRenderer) chart(c *Chart) *chart.Chart {
	xOf := func(x float64) float64 { return x }
	if c.XScale == Log2 {
		xOf = math.Log2
	}
	xs := make([]float64, len(c.X))
	for i, x := range c.X {
		xs[i] = xOf(x)
	}

	var xTicks []chart.Tick
	switch {
	case c.XTickLabels != nil:
		for i, label := range c.XTickLabels {
			xTicks = append(xTicks, chart.Tick{Value: xs[i], Label: label})
		}
	case c.XScale == Log2:
		lo, hi := minMax(c.X)
		for _, v := range powersOfTwo(lo, hi) {
			xTicks = append(xTicks, chart.Tick{Value: math.Log2(v), Label: strconv.FormatFloat(v, 'g', -1, 64)})
		}
	default:
		for i, x := range c.X {
			xTicks = append(xTicks, chart.Tick{Value: xs[i], Label: strconv.FormatFloat(x, 'g', -1, 64)})
		}
	}

	grid := chart.Style{
		StrokeColor:     toDrawingColor(gridColor),
		StrokeWidth:     0.8,
		StrokeDashArray: []float64{4, 2},
	}
	var xGrid []chart.GridLine
	for _, t := range xTicks {
		xGrid = append(xGrid, chart.GridLine{Value: t.Value})
	}

	series := make([]chart.Series, len(c.Series))
	var yLo, yHi float64
	for i := range c.Series {
		s := &c.Series[i]
		lo, hi := minMax(s.Values)
		if i == 0 || lo < yLo {
			yLo = lo
		}
		if i == 0 || hi > yHi {
			yHi = hi
		}
		st := chart.Style{
			StrokeColor:     toDrawingColor(s.Style.drawColor()),
			StrokeWidth:     lineWidth,
			StrokeDashArray: s.Style.Line.Dashes(),
		}
		if s.Style.Marker != NoMarker {
			st.DotColor = st.StrokeColor
			st.DotWidth = markerRadius
		}
		// go-chart replaces a zero stroke width with its default.
		if s.Style.Line == NoLine {
			st.StrokeColor = drawing.ColorTransparent
		}
		series[i] = chart.ContinuousSeries{
			Name:    s.Label(),
			XValues: xs,
			YValues: s.Values,
			Style:   st,
		}
	}

	var yGrid []chart.GridLine
	const yGridLines = 5
	if yHi > yLo {
		step := (yHi - yLo) / yGridLines
		for i := 0; i <= yGridLines; i++ {
			yGrid = append(yGrid, chart.GridLine{Value: yLo + float64(i)*step})
		}
	}

	w, h := c.size()
	// go-chart refuses to draw an empty range, so widen a single X or Y
	// value by one unit either side. On log2 charts that is one octave.
	xLo, xHi := minMax(xs)
	if xLo == xHi {
		xLo, xHi = xLo-1, xHi+1
	}
	var yRange chart.Range
	if yLo == yHi {
		yRange = &chart.ContinuousRange{Min: yLo - 1, Max: yHi + 1}
	}
	ch := &chart.Chart{
		Title:      strings.ReplaceAll(c.Title, "\n", " / "),
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      int(w.Dots(goChartDPI)),
		Height:     int(h.Dots(goChartDPI)),
		DPI:        goChartDPI,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.XLabel,
			NameStyle:      chart.Style{FontSize: labelFontSize},
			Style:          chart.Style{FontSize: tickFontSize},
			Range:          &chart.ContinuousRange{Min: xLo, Max: xHi},
			Ticks:          xTicks,
			GridLines:      xGrid,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           c.YLabel,
			NameStyle:      chart.Style{FontSize: labelFontSize},
			Style:          chart.Style{FontSize: tickFontSize},
			Range:          yRange,
			GridLines:      yGrid,
			GridMajorStyle: grid,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch, chart.Style{FontSize: legendFontSize})}
	return ch
}

func toDrawingColor(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
