// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
)

const confidence = 0.95

// ReadBenchmarks builds a dataset from Go benchmark output. Each result is
// assigned to a series by opts.SeriesKey and to an X value by opts.XKey, both
// benchproc projections over the benchmark name and file configuration.
// Repeated runs of the same point are summarized by their center value. name
// is used in error messages.
func ReadBenchmarks(r io.Reader, name string, opts Options) (*Dataset, error) {
	o := opts.withDefaults()

	var pp benchproc.ProjectionParser
	seriesP, err := pp.Parse(o.SeriesKey, nil)
	if err != nil {
		return nil, fmt.Errorf("series key %q: %w", o.SeriesKey, err)
	}
	xP, err := pp.Parse(o.XKey, nil)
	if err != nil {
		return nil, fmt.Errorf("x key %q: %w", o.XKey, err)
	}

	samples := make(map[string]map[float64][]float64)
	var names []string
	xSet := make(map[float64]struct{})

	logger := zap.L()
	reader := benchfmt.NewReader(r, name)
	for reader.Scan() {
		var res *benchfmt.Result
		switch rec := reader.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			res = rec
		case *benchfmt.SyntaxError:
			// Report a non-fatal parse error.
			logger.Warn("Skipping malformed benchmark line",
				zap.String("file", rec.FileName),
				zap.Int("line", rec.Line),
				zap.String("msg", rec.Msg))
			continue
		default:
			continue
		}

		v, ok := res.Value(o.Unit)
		if !ok {
			continue
		}
		series := keyString(seriesP, seriesP.Project(res))
		xs := keyString(xP, xP.Project(res))
		x, err := parseX(xs)
		if err != nil {
			return nil, &ParseError{Path: name, Err: fmt.Errorf("x value %q of %s: %w", xs, res.Name.Full(), err)}
		}

		byX, ok := samples[series]
		if !ok {
			byX = make(map[float64][]float64)
			samples[series] = byX
			names = append(names, series)
		}
		byX[x] = append(byX[x], v)
		xSet[x] = struct{}{}
	}
	if err := reader.Err(); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if len(names) == 0 {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("%w: no results with unit %q", ErrEmptyDataset, o.Unit)}
	}

	d := &Dataset{
		XLabel: strings.TrimPrefix(o.XKey, "/"),
		Names:  names,
		Values: make(map[string][]float64, len(names)),
	}
	for x := range xSet {
		d.X = append(d.X, x)
	}
	slices.Sort(d.X)

	thresholds := benchmath.DefaultThresholds
	for _, series := range names {
		values := make([]float64, len(d.X))
		for i, x := range d.X {
			vs := samples[series][x]
			if len(vs) == 0 {
				return nil, &ParseError{Path: name, Err: fmt.Errorf("%w: series %q, x %v", ErrMissingPoint, series, x)}
			}
			sample := benchmath.NewSample(vs, &thresholds)
			values[i] = benchmath.AssumeNothing.Summary(sample, confidence).Center
		}
		d.Values[series] = values
	}
	return d, nil
}

func keyString(p *benchproc.Projection, k benchproc.Key) string {
	fields := p.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = k.Get(f)
	}
	return strings.Join(parts, ",")
}

// parseX accepts plain numbers and Go durations, the latter in seconds.
func parseX(s string) (float64, error) {
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("not a number or duration")
	}
	return d.Seconds(), nil
}
