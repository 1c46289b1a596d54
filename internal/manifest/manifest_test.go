// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petenewcomb/benchplot"
	"github.com/petenewcomb/benchplot/internal/manifest"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

const inline = `
prefix: run1
outdir: /tmp/charts
charts:
  - name: latency
    title: Latency vs Thread Count
    xlabel: Thread Count
    ylabel: Average Latency (µs)
    x: [1, 2, 4, 8]
    xticks: ["1", "2", "4", "8"]
    width: 8
    height: 4.5
    series:
      - name: two_copy
        values: [0.40, 0.42, 0.56, 0.72]
      - name: mmap
        values: [0.5, 0.6, 0.7, 0.8]
        color: "#112233"
        marker: D
        line: ":"
`

func TestInlineManifest(t *testing.T) {
	chk := require.New(t)
	m, err := manifest.Parse(strings.NewReader(inline), ".")
	chk.NoError(err)
	charts, err := m.Charts()
	chk.NoError(err)
	chk.Len(charts, 1)

	c := charts[0]
	chk.Equal("latency", c.ID())
	chk.Equal(filepath.Join("/tmp/charts", "run1_latency.png"), c.Output)
	chk.Equal(benchplot.Linear, c.XScale)
	chk.Equal([]string{"1", "2", "4", "8"}, c.XTickLabels)
	chk.Equal(8*vg.Inch, c.Width)
	chk.Equal(4.5*vg.Inch, c.Height)
	chk.Len(c.Series, 2)

	two := c.Series[0]
	chk.Equal(benchplot.Circle, two.Style.Marker)

	mmap := c.Series[1]
	chk.Equal(benchplot.Diamond, mmap.Style.Marker)
	chk.Equal(benchplot.Dotted, mmap.Style.Line)
	chk.Equal(uint8(0x11), mmap.Style.Color.R)
	chk.Equal(uint8(0x33), mmap.Style.Color.B)
}

func TestSourceManifest(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	chk.NoError(os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	chk.NoError(os.WriteFile(filepath.Join(dir, "data", "tput.csv"), []byte(
		"Message Size (bytes),two_copy,zero_copy\n64,0.40,0.33\n256,0.42,0.38\n"), 0o644))
	chk.NoError(os.WriteFile(filepath.Join(dir, "charts.yaml"), []byte(`
outdir: `+filepath.Join(dir, "out")+`
format: svg
charts:
  - name: throughput
    title: Throughput
    ylabel: Gbps
    xscale: log2
    source: data/tput.csv
    series:
      - name: zero_copy
        line: "--"
      - name: extra
        values: [1, 2]
`), 0o644))

	m, err := manifest.Load(filepath.Join(dir, "charts.yaml"))
	chk.NoError(err)
	charts, err := m.Charts()
	chk.NoError(err)
	chk.Len(charts, 1)

	c := charts[0]
	chk.Equal(filepath.Join(dir, "out", "throughput.svg"), c.Output)
	chk.Equal("Message Size (bytes)", c.XLabel)
	chk.Equal(benchplot.Log2, c.XScale)
	chk.Equal([]float64{64, 256}, c.X)
	chk.Len(c.Series, 3)
	chk.Equal("zero_copy", c.Series[1].Name)
	chk.Equal(benchplot.Dashed, c.Series[1].Style.Line)
	chk.Equal(benchplot.Triangle, c.Series[1].Style.Marker)
	chk.Equal([]float64{0.33, 0.38}, c.Series[1].Values)
	chk.Equal("extra", c.Series[2].Name)
}

func TestManifestErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		target error
		msg    string
	}{
		{name: "no charts", input: "prefix: x\n", target: manifest.ErrNoCharts},
		{name: "no name", input: "charts:\n  - title: t\n", target: manifest.ErrNoName},
		{name: "unknown field", input: "charts:\n  - name: a\n    colour: red\n", msg: "colour"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			_, err := manifest.Parse(strings.NewReader(tc.input), ".")
			chk.Error(err)
			if tc.target != nil {
				chk.ErrorIs(err, tc.target)
			}
			if tc.msg != "" {
				chk.ErrorContains(err, tc.msg)
			}
		})
	}
}

func TestChartErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		target error
		msg    string
	}{
		{
			name:   "length mismatch",
			input:  "charts:\n  - name: a\n    x: [1, 2]\n    series:\n      - name: s\n        values: [1]\n",
			target: benchplot.ErrLengthMismatch,
		},
		{
			name:   "non-positive log",
			input:  "charts:\n  - name: a\n    xscale: log2\n    x: [0, 2]\n    series:\n      - name: s\n        values: [1, 2]\n",
			target: benchplot.ErrNonPositiveLog,
		},
		{
			name:   "no series",
			input:  "charts:\n  - name: a\n    x: [1, 2]\n",
			target: benchplot.ErrNoSeries,
		},
		{
			name:  "bad scale",
			input: "charts:\n  - name: a\n    xscale: cubic\n",
			msg:   "unknown scale",
		},
		{
			name:  "bad color",
			input: "charts:\n  - name: a\n    x: [1]\n    series:\n      - name: s\n        values: [1]\n        color: red\n",
			msg:   `series "s"`,
		},
		{
			name:  "missing source",
			input: "charts:\n  - name: a\n    source: nowhere.csv\n",
			msg:   "nowhere.csv",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			m, err := manifest.Parse(strings.NewReader(tc.input), t.TempDir())
			chk.NoError(err)
			_, err = m.Charts()
			chk.Error(err)
			chk.ErrorContains(err, `chart "a"`)
			if tc.target != nil {
				chk.ErrorIs(err, tc.target)
			}
			if tc.msg != "" {
				chk.ErrorContains(err, tc.msg)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	chk := require.New(t)
	m := &manifest.Manifest{}
	chk.Equal("a.png", m.OutputPath("a"))
	m = &manifest.Manifest{Prefix: "p", OutDir: "out", Format: "pdf"}
	chk.Equal(filepath.Join("out", "p_a.pdf"), m.OutputPath("a"))
}
