// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// Scale selects how X values are mapped onto the horizontal axis.
type Scale int

const (
	Linear Scale = iota
	Log2
)

func (s Scale) String() string {
	switch s {
	case Linear:
		return "linear"
	case Log2:
		return "log2"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// ParseScale accepts "linear" (or "") and "log2" (or "log").
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "log2", "log":
		return Log2, nil
	}
	return Linear, fmt.Errorf("unknown scale %q", s)
}

// Marker is the glyph drawn at each data point.
type Marker int

const (
	NoMarker Marker = iota
	Circle
	Square
	Triangle
	Diamond
	Cross
	Plus
	Ring
)

var markerNames = map[Marker]string{
	NoMarker: "none",
	Circle:   "circle",
	Square:   "square",
	Triangle: "triangle",
	Diamond:  "diamond",
	Cross:    "cross",
	Plus:     "plus",
	Ring:     "ring",
}

func (m Marker) String() string {
	if s, ok := markerNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Marker(%d)", int(m))
}

// ParseMarker accepts marker names as well as the single-character matplotlib
// codes (o, s, ^, D, x, +).
func ParseMarker(s string) (Marker, error) {
	switch strings.TrimSpace(s) {
	case "", "none":
		return NoMarker, nil
	case "o", "circle":
		return Circle, nil
	case "s", "square":
		return Square, nil
	case "^", "triangle":
		return Triangle, nil
	case "D", "d", "diamond":
		return Diamond, nil
	case "x", "cross":
		return Cross, nil
	case "+", "plus":
		return Plus, nil
	case "ring":
		return Ring, nil
	}
	return NoMarker, fmt.Errorf("unknown marker %q", s)
}

// LinePattern is the dash pattern of a series line.
type LinePattern int

const (
	Solid LinePattern = iota
	Dashed
	DashDot
	Dotted
	NoLine
)

func (p LinePattern) String() string {
	switch p {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case DashDot:
		return "dashdot"
	case Dotted:
		return "dotted"
	case NoLine:
		return "none"
	default:
		return fmt.Sprintf("LinePattern(%d)", int(p))
	}
}

// ParseLinePattern accepts pattern names as well as the matplotlib line style
// tokens (-, --, -., :).
func ParseLinePattern(s string) (LinePattern, error) {
	switch strings.TrimSpace(s) {
	case "", "-", "solid":
		return Solid, nil
	case "--", "dashed":
		return Dashed, nil
	case "-.", "dashdot":
		return DashDot, nil
	case ":", "dotted":
		return Dotted, nil
	case "none":
		return NoLine, nil
	}
	return Solid, fmt.Errorf("unknown line pattern %q", s)
}

// Dashes returns the on/off lengths of the pattern, in points. Solid lines
// return nil.
func (p LinePattern) Dashes() []float64 {
	switch p {
	case Dashed:
		return []float64{6, 3}
	case DashDot:
		return []float64{6, 2.5, 1.5, 2.5}
	case Dotted:
		return []float64{1.5, 2.5}
	default:
		return nil
	}
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex color.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Style is the visual identity of a series.
type Style struct {
	Color  color.NRGBA
	Marker Marker
	Line   LinePattern
}

// drawColor returns the series color, using black for an unset color.
func (s Style) drawColor() color.Color {
	if s.Color == (color.NRGBA{}) {
		return color.Black
	}
	return s.Color
}

// Series is one named line. Values are matched by index with the X values of
// the chart that contains the series.
type Series struct {
	Name   string
	Values []float64
	Style  Style
}

// Label returns the legend text of the series.
func (s *Series) Label() string {
	return DeriveLabel(s.Name)
}

// Default figure size, 7in x 5in.
const (
	DefaultWidth  = 7 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// Chart describes a single image.
type Chart struct {
	// Name identifies the chart in logs and errors. When empty the base name
	// of Output without its extension is used.
	Name string

	Title  string
	XLabel string
	YLabel string

	X      []float64
	XScale Scale
	// XTickLabels, when set, replaces the generated tick marks with one
	// labeled tick per X value.
	XTickLabels []string

	Series []Series

	// Output is the image path. Its extension selects the format.
	Output string

	Width  vg.Length
	Height vg.Length
}

// ID returns the name used to identify the chart in logs and errors.
func (c *Chart) ID() string {
	if c.Name != "" {
		return c.Name
	}
	base := filepath.Base(c.Output)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (c *Chart) size() (vg.Length, vg.Length) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Validate checks that the chart can be drawn.
func (c *Chart) Validate() error {
	invalid := func(series string, err error) error {
		return &ValidationError{Chart: c.ID(), Series: series, Err: err}
	}
	if c.Output == "" {
		return invalid("", ErrNoOutput)
	}
	if len(c.Series) == 0 {
		return invalid("", ErrNoSeries)
	}
	if len(c.X) == 0 {
		return invalid("", ErrNoXValues)
	}
	if c.XTickLabels != nil && len(c.XTickLabels) != len(c.X) {
		return invalid("", fmt.Errorf("%w: %d tick labels for %d x values", ErrLengthMismatch, len(c.XTickLabels), len(c.X)))
	}
	if c.XScale == Log2 {
		for _, x := range c.X {
			if !(x > 0) {
				return invalid("", fmt.Errorf("%w: %v", ErrNonPositiveLog, x))
			}
		}
	}
	seen := make(map[string]struct{}, len(c.Series))
	for i := range c.Series {
		s := &c.Series[i]
		if _, dup := seen[s.Name]; dup {
			return invalid(s.Name, ErrDuplicateSeries)
		}
		seen[s.Name] = struct{}{}
		if len(s.Values) != len(c.X) {
			return invalid(s.Name, fmt.Errorf("%w: %d values for %d x values", ErrLengthMismatch, len(s.Values), len(c.X)))
		}
	}
	return nil
}

// ChartBuilder assembles a [Chart]. Setters may be chained; [ChartBuilder.Build]
// returns the chart once it validates.
type ChartBuilder struct {
	chart Chart
}

// NewChart starts a chart with the given title.
func NewChart(title string) *ChartBuilder {
	return &ChartBuilder{chart: Chart{Title: title}}
}

func (b *ChartBuilder) Name(name string) *ChartBuilder {
	b.chart.Name = name
	return b
}

// X sets the shared X values and their scale.
func (b *ChartBuilder) X(values []float64, scale Scale) *ChartBuilder {
	b.chart.X = values
	b.chart.XScale = scale
	return b
}

func (b *ChartBuilder) XTickLabels(labels ...string) *ChartBuilder {
	b.chart.XTickLabels = labels
	return b
}

func (b *ChartBuilder) Labels(x, y string) *ChartBuilder {
	b.chart.XLabel = x
	b.chart.YLabel = y
	return b
}

func (b *ChartBuilder) Output(path string) *ChartBuilder {
	b.chart.Output = path
	return b
}

func (b *ChartBuilder) Size(w, h vg.Length) *ChartBuilder {
	b.chart.Width = w
	b.chart.Height = h
	return b
}

// Series appends a series.
func (b *ChartBuilder) Series(name string, values []float64, style Style) *ChartBuilder {
	b.chart.Series = append(b.chart.Series, Series{Name: name, Values: values, Style: style})
	return b
}

func (b *ChartBuilder) Build() (*Chart, error) {
	c := b.chart
	c.Series = append([]Series(nil), b.chart.Series...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
