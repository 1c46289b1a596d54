// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// maxLabeledTicks bounds the number of labeled power-of-two ticks; beyond it
// only every n-th tick carries a label.
const maxLabeledTicks = 10

// log2Ticks places a tick at every power of two within the axis range.
type log2Ticks struct{}

var _ plot.Ticker = log2Ticks{}

func (log2Ticks) Ticks(min, max float64) []plot.Tick {
	powers := powersOfTwo(min, max)
	if len(powers) < 2 {
		// Less than an octave; fall back to evenly spaced ticks.
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	stride := (len(powers) + maxLabeledTicks - 1) / maxLabeledTicks
	ticks := make([]plot.Tick, len(powers))
	for i, v := range powers {
		ticks[i].Value = v
		if i%stride == 0 {
			ticks[i].Label = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return ticks
}

// powersOfTwo returns the powers of two in [min, max], in increasing order.
func powersOfTwo(min, max float64) []float64 {
	if !(min > 0) || max < min {
		return nil
	}
	lo := int(math.Ceil(math.Log2(min)))
	hi := int(math.Floor(math.Log2(max)))
	var out []float64
	for k := lo; k <= hi; k++ {
		out = append(out, math.Ldexp(1, k))
	}
	return out
}
