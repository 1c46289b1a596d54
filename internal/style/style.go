// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package style maps series names to their visual styles. The mapping is
// built once and never modified.
package style

import (
	"hash/fnv"
	"image/color"

	"github.com/petenewcomb/benchplot"
	"gonum.org/v1/plot/palette/brewer"
)

type entry struct {
	name  string
	style benchplot.Style
}

// builtin lists the transfer strategies in drawing order.
var builtin = []entry{
	{"two_copy", benchplot.Style{Color: mustColor("#ffa600"), Marker: benchplot.Circle, Line: benchplot.Solid}},
	{"one_copy", benchplot.Style{Color: mustColor("#bc5090"), Marker: benchplot.Square, Line: benchplot.Dashed}},
	{"zero_copy", benchplot.Style{Color: mustColor("#003f5c"), Marker: benchplot.Triangle, Line: benchplot.DashDot}},
}

var byName = func() map[string]benchplot.Style {
	m := make(map[string]benchplot.Style, len(builtin))
	for _, e := range builtin {
		m[e.name] = e.style
	}
	return m
}()

const fallbackPaletteSize = 8

var fallbackColors = func() []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", fallbackPaletteSize)
	if err != nil {
		panic(err)
	}
	return p.Colors()
}()

var fallbackMarkers = []benchplot.Marker{
	benchplot.Circle,
	benchplot.Square,
	benchplot.Triangle,
	benchplot.Diamond,
	benchplot.Ring,
	benchplot.Cross,
	benchplot.Plus,
}

// Names returns the names of the built-in series in drawing order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, e := range builtin {
		names[i] = e.name
	}
	return names
}

// Lookup returns the style registered for name. Other names get a color from
// the Dark2 brewer palette and a marker chosen by a hash of the name, so a
// given name always looks the same.
func Lookup(name string) benchplot.Style {
	if s, ok := byName[name]; ok {
		return s
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()
	c := color.NRGBAModel.Convert(fallbackColors[sum%uint32(len(fallbackColors))]).(color.NRGBA)
	return benchplot.Style{
		Color:  c,
		Marker: fallbackMarkers[(sum/uint32(len(fallbackColors)))%uint32(len(fallbackMarkers))],
		Line:   benchplot.Solid,
	}
}

// Builtin reports whether name has a registered style.
func Builtin(name string) bool {
	_, ok := byName[name]
	return ok
}

func mustColor(s string) color.NRGBA {
	c, err := benchplot.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
