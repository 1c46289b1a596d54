// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/petenewcomb/benchplot"
	"github.com/stretchr/testify/require"
)

var messageSizes = []float64{64, 256, 1024, 4096}

func TestChartBuilderBuild(t *testing.T) {
	chk := require.New(t)
	c, err := benchplot.NewChart("Throughput").
		X(messageSizes, benchplot.Log2).
		Labels("Message Size (bytes)", "Throughput (Gbps)").
		Output("out/throughput.png").
		Series("two_copy", []float64{1, 2, 3, 4}, benchplot.Style{}).
		Series("one_copy", []float64{4, 3, 2, 1}, benchplot.Style{}).
		Build()
	chk.NoError(err)
	chk.Equal("throughput", c.ID())
	chk.Equal(benchplot.Log2, c.XScale)
	chk.Len(c.Series, 2)
	chk.Equal("Two Copy", c.Series[0].Label())
}

func TestChartValidate(t *testing.T) {
	valid := func() *benchplot.Chart {
		return &benchplot.Chart{
			Title:  "t",
			X:      messageSizes,
			XScale: benchplot.Log2,
			Output: "x.png",
			Series: []benchplot.Series{
				{Name: "a", Values: []float64{1, 2, 3, 4}},
				{Name: "b", Values: []float64{1, 2, 3, 4}},
			},
		}
	}
	for _, tc := range []struct {
		name   string
		mutate func(c *benchplot.Chart)
		want   error
		series string
	}{
		{"valid", func(c *benchplot.Chart) {}, nil, ""},
		{"no series", func(c *benchplot.Chart) { c.Series = nil }, benchplot.ErrNoSeries, ""},
		{"no output", func(c *benchplot.Chart) { c.Output = "" }, benchplot.ErrNoOutput, ""},
		{"duplicate", func(c *benchplot.Chart) { c.Series[1].Name = "a" }, benchplot.ErrDuplicateSeries, "a"},
		{"short series", func(c *benchplot.Chart) { c.Series[1].Values = []float64{1, 2, 3} }, benchplot.ErrLengthMismatch, "b"},
		{"long series", func(c *benchplot.Chart) { c.Series[0].Values = []float64{1, 2, 3, 4, 5} }, benchplot.ErrLengthMismatch, "a"},
		{"tick labels", func(c *benchplot.Chart) { c.XTickLabels = []string{"64"} }, benchplot.ErrLengthMismatch, ""},
		{"zero on log", func(c *benchplot.Chart) { c.X = []float64{0, 1, 2, 4} }, benchplot.ErrNonPositiveLog, ""},
		{"no x values", func(c *benchplot.Chart) { c.X = nil; c.Series[0].Values = nil; c.Series[1].Values = nil }, benchplot.ErrNoXValues, ""},
		{"zero on linear", func(c *benchplot.Chart) { c.X = []float64{0, 1, 2, 4}; c.XScale = benchplot.Linear }, nil, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.want == nil {
				chk.NoError(err)
				return
			}
			chk.ErrorIs(err, tc.want)
			var ve *benchplot.ValidationError
			chk.True(errors.As(err, &ve))
			chk.Equal(tc.series, ve.Series)
			chk.Equal("x", ve.Chart)
		})
	}
}

func TestChartBuilderRejectsMismatch(t *testing.T) {
	chk := require.New(t)
	_, err := benchplot.NewChart("t").
		X(messageSizes, benchplot.Log2).
		Output("x.png").
		Series("two_copy", []float64{5.546936, 17.572738, 55.995350}, benchplot.Style{}).
		Build()
	chk.ErrorIs(err, benchplot.ErrLengthMismatch)
}

func TestParseStyleTokens(t *testing.T) {
	chk := require.New(t)

	for tok, want := range map[string]benchplot.Marker{
		"o": benchplot.Circle, "s": benchplot.Square, "^": benchplot.Triangle,
		"D": benchplot.Diamond, "x": benchplot.Cross, "+": benchplot.Plus,
		"": benchplot.NoMarker, "ring": benchplot.Ring,
	} {
		m, err := benchplot.ParseMarker(tok)
		chk.NoError(err)
		chk.Equal(want, m, "marker %q", tok)
	}
	_, err := benchplot.ParseMarker("*")
	chk.Error(err)

	for tok, want := range map[string]benchplot.LinePattern{
		"-": benchplot.Solid, "--": benchplot.Dashed, "-.": benchplot.DashDot,
		":": benchplot.Dotted, "none": benchplot.NoLine, "dashed": benchplot.Dashed,
	} {
		p, err := benchplot.ParseLinePattern(tok)
		chk.NoError(err)
		chk.Equal(want, p, "line %q", tok)
	}
	_, err = benchplot.ParseLinePattern("~")
	chk.Error(err)
	chk.Nil(benchplot.Solid.Dashes())
	chk.NotEmpty(benchplot.DashDot.Dashes())

	s, err := benchplot.ParseScale("log2")
	chk.NoError(err)
	chk.Equal(benchplot.Log2, s)
	s, err = benchplot.ParseScale("")
	chk.NoError(err)
	chk.Equal(benchplot.Linear, s)
	_, err = benchplot.ParseScale("log10")
	chk.Error(err)
}

func TestParseColor(t *testing.T) {
	chk := require.New(t)
	c, err := benchplot.ParseColor("#ffa600")
	chk.NoError(err)
	chk.Equal(color.NRGBA{R: 0xff, G: 0xa6, B: 0x00, A: 0xff}, c)

	c, err = benchplot.ParseColor("003f5c80")
	chk.NoError(err)
	chk.Equal(color.NRGBA{R: 0x00, G: 0x3f, B: 0x5c, A: 0x80}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := benchplot.ParseColor(bad)
		chk.Error(err, "color %q", bad)
	}
}
