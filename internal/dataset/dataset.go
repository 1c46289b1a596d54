// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dataset loads named numeric series that share an X axis from
// CSV, XLSX and Go benchmark result files.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/petenewcomb/benchplot"
	"github.com/petenewcomb/benchplot/internal/style"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrEmptyDataset = constError("dataset has no series")
const ErrMissingPoint = constError("series has no value for x")
const ErrUnknownFormat = constError("unknown dataset format")

// ParseError locates a malformed input line. Line is 1-based; zero means the
// error is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dataset is a set of series sharing one X axis. Names keeps the series in the
// order they appear in the source.
type Dataset struct {
	XLabel string
	X      []float64
	Names  []string
	Values map[string][]float64
}

// Series returns the series of d, styled from the style registry.
func (d *Dataset) Series() []benchplot.Series {
	out := make([]benchplot.Series, len(d.Names))
	for i, name := range d.Names {
		out[i] = benchplot.Series{
			Name:   name,
			Values: d.Values[name],
			Style:  style.Lookup(name),
		}
	}
	return out
}

// Options tunes how files are interpreted. The zero value selects the
// defaults documented on each field.
type Options struct {
	// Sheet is the XLSX sheet to read; the first sheet when empty.
	Sheet string
	// SeriesKey is the benchproc projection naming a series; "/impl" when
	// empty.
	SeriesKey string
	// XKey is the benchproc projection giving the X value; "/size" when
	// empty.
	XKey string
	// Unit is the benchmark metric plotted on Y; "sec/op" when empty.
	Unit string
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.SeriesKey == "" {
		out.SeriesKey = "/impl"
	}
	if out.XKey == "" {
		out.XKey = "/size"
	}
	if out.Unit == "" {
		out.Unit = "sec/op"
	}
	return out
}

// Load reads the dataset at path, choosing the parser from its extension:
// .csv, .xlsx, or .txt/.bench for Go benchmark output.
func Load(path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f, path)
	case ".xlsx":
		return LoadXLSX(path, opts.Sheet)
	case ".txt", ".bench":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadBenchmarks(f, path, opts)
	}
	return nil, &ParseError{Path: path, Err: ErrUnknownFormat}
}

// fromRows builds a dataset from a header row ("x label", series names...)
// followed by one row per X value. Blank rows are skipped. lines holds the
// source line of each row; when nil, row i is taken to be on line i+1.
func fromRows(path string, rows [][]string, lines []int) (*Dataset, error) {
	line := func(i int) int {
		if lines == nil {
			return i + 1
		}
		return lines[i]
	}

	header := -1
	for i, row := range rows {
		if !blank(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, &ParseError{Path: path, Err: ErrEmptyDataset}
	}
	head := trimRow(rows[header])
	if len(head) < 2 {
		return nil, &ParseError{Path: path, Line: line(header), Err: ErrEmptyDataset}
	}

	d := &Dataset{
		XLabel: head[0],
		Names:  head[1:],
		Values: make(map[string][]float64, len(head)-1),
	}
	for _, name := range d.Names {
		if name == "" {
			return nil, &ParseError{Path: path, Line: line(header), Err: fmt.Errorf("empty series name")}
		}
		if _, dup := d.Values[name]; dup {
			return nil, &ParseError{Path: path, Line: line(header), Err: fmt.Errorf("%w: %q", benchplot.ErrDuplicateSeries, name)}
		}
		d.Values[name] = nil
	}

	for i := header + 1; i < len(rows); i++ {
		row := trimRow(rows[i])
		if blank(row) {
			continue
		}
		if len(row) != len(head) {
			return nil, &ParseError{Path: path, Line: line(i), Err: fmt.Errorf("%d fields, want %d", len(row), len(head))}
		}
		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line(i), Err: err}
		}
		d.X = append(d.X, x)
		for j, name := range d.Names {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line(i), Err: fmt.Errorf("series %q: %w", name, err)}
			}
			d.Values[name] = append(d.Values[name], v)
		}
	}
	if len(d.X) == 0 {
		return nil, &ParseError{Path: path, Err: ErrEmptyDataset}
	}
	return d, nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, s := range row {
		out[i] = strings.TrimSpace(s)
	}
	// Spreadsheets pad rows with empty trailing cells.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func blank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
