// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package manifest reads YAML descriptions of a set of charts.
//
// A manifest names an output directory and file prefix and lists the charts
// to draw. Each chart either lists its series inline or points at a dataset
// file (CSV, XLSX or Go benchmark output) through its source field; inline
// series entries may then override the styles of the loaded series.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/petenewcomb/benchplot"
	"github.com/petenewcomb/benchplot/internal/dataset"
	"github.com/petenewcomb/benchplot/internal/style"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrNoCharts = constError("manifest lists no charts")
const ErrNoName = constError("chart has no name")

const DefaultFormat = "png"

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Prefix     string  `yaml:"prefix"`
	OutDir     string  `yaml:"outdir"`
	Format     string  `yaml:"format"`
	ChartSpecs []Chart `yaml:"charts"`

	// dir resolves relative source paths.
	dir string
}

// Chart describes one chart of a manifest.
type Chart struct {
	Name   string    `yaml:"name"`
	Title  string    `yaml:"title"`
	XLabel string    `yaml:"xlabel"`
	YLabel string    `yaml:"ylabel"`
	XScale string    `yaml:"xscale"`
	X      []float64 `yaml:"x"`
	XTicks []string  `yaml:"xticks"`
	Source string    `yaml:"source"`
	Sheet  string    `yaml:"sheet"`
	// Benchmark projections, see dataset.Options.
	SeriesKey string   `yaml:"series_key"`
	XKey      string   `yaml:"x_key"`
	Unit      string   `yaml:"unit"`
	Series    []Series `yaml:"series"`
	Width     float64  `yaml:"width"`  // inches
	Height    float64  `yaml:"height"` // inches
}

// Series lists values and style overrides for one series.
type Series struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
	Color  string    `yaml:"color"`
	Marker string    `yaml:"marker"`
	Line   string    `yaml:"line"`
}

// Parse decodes a manifest. Relative source paths are resolved against dir.
func Parse(r io.Reader, dir string) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.ChartSpecs) == 0 {
		return nil, ErrNoCharts
	}
	for i := range m.ChartSpecs {
		if m.ChartSpecs[i].Name == "" {
			return nil, fmt.Errorf("chart %d: %w", i+1, ErrNoName)
		}
	}
	m.dir = dir
	return &m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// OutputPath returns where the chart named name is written:
// <outdir>/<prefix>_<name>.<format>.
func (m *Manifest) OutputPath(name string) string {
	format := m.Format
	if format == "" {
		format = DefaultFormat
	}
	base := name
	if m.Prefix != "" {
		base = m.Prefix + "_" + name
	}
	return filepath.Join(m.OutDir, base+"."+format)
}

// Charts converts every manifest chart into a validated benchplot chart,
// loading referenced datasets as it goes.
func (m *Manifest) Charts() ([]*benchplot.Chart, error) {
	charts := make([]*benchplot.Chart, 0, len(m.ChartSpecs))
	for i := range m.ChartSpecs {
		c, err := m.chart(&m.ChartSpecs[i])
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", m.ChartSpecs[i].Name, err)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

func (m *Manifest) chart(mc *Chart) (*benchplot.Chart, error) {
	scale, err := benchplot.ParseScale(mc.XScale)
	if err != nil {
		return nil, err
	}

	x := mc.X
	var series []benchplot.Series
	xLabel := mc.XLabel
	if mc.Source != "" {
		path := mc.Source
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		d, err := dataset.Load(path, dataset.Options{
			Sheet:     mc.Sheet,
			SeriesKey: mc.SeriesKey,
			XKey:      mc.XKey,
			Unit:      mc.Unit,
		})
		if err != nil {
			return nil, err
		}
		if x == nil {
			x = d.X
		}
		if xLabel == "" {
			xLabel = d.XLabel
		}
		series = d.Series()
	}

	for _, ms := range mc.Series {
		idx := -1
		for i := range series {
			if series[i].Name == ms.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			series = append(series, benchplot.Series{Name: ms.Name, Style: style.Lookup(ms.Name)})
			idx = len(series) - 1
		}
		s := &series[idx]
		if ms.Values != nil {
			s.Values = ms.Values
		}
		if err := applyStyle(&s.Style, &ms); err != nil {
			return nil, fmt.Errorf("series %q: %w", ms.Name, err)
		}
	}

	b := benchplot.NewChart(mc.Title).
		Name(mc.Name).
		X(x, scale).
		Labels(xLabel, mc.YLabel).
		Output(m.OutputPath(mc.Name))
	if mc.XTicks != nil {
		b.XTickLabels(mc.XTicks...)
	}
	if mc.Width > 0 && mc.Height > 0 {
		b.Size(inches(mc.Width), inches(mc.Height))
	}
	for _, s := range series {
		b.Series(s.Name, s.Values, s.Style)
	}
	return b.Build()
}

func applyStyle(st *benchplot.Style, ms *Series) error {
	if ms.Color != "" {
		c, err := benchplot.ParseColor(ms.Color)
		if err != nil {
			return err
		}
		st.Color = c
	}
	if ms.Marker != "" {
		mk, err := benchplot.ParseMarker(ms.Marker)
		if err != nil {
			return err
		}
		st.Marker = mk
	}
	if ms.Line != "" {
		lp, err := benchplot.ParseLinePattern(ms.Line)
		if err != nil {
			return err
		}
		st.Line = lp
	}
	return nil
}

func inches(v float64) vg.Length {
	return vg.Length(v) * vg.Inch
}
