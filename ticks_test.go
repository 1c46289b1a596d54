// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPowersOfTwo(t *testing.T) {
	chk := require.New(t)
	chk.Equal([]float64{64, 128, 256, 512, 1024, 2048, 4096}, powersOfTwo(64, 4096))
	chk.Equal([]float64{1, 2, 4}, powersOfTwo(0.75, 7))
	chk.Equal([]float64{0.25, 0.5}, powersOfTwo(0.2, 0.6))
	chk.Empty(powersOfTwo(5, 7))
	chk.Empty(powersOfTwo(0, 8))
	chk.Empty(powersOfTwo(8, 2))
}

func TestLog2Ticks(t *testing.T) {
	chk := require.New(t)
	ticks := log2Ticks{}.Ticks(64, 4096)
	chk.Len(ticks, 7)
	for i, want := range []string{"64", "128", "256", "512", "1024", "2048", "4096"} {
		chk.Equal(want, ticks[i].Label)
	}

	// Wide ranges label only some ticks.
	ticks = log2Ticks{}.Ticks(1, 1<<20)
	chk.Len(ticks, 21)
	labeled := 0
	for _, tk := range ticks {
		if tk.Label != "" {
			labeled++
		}
	}
	chk.LessOrEqual(labeled, maxLabeledTicks)
	chk.Equal("1", ticks[0].Label)

	// Less than an octave falls back to linear ticks.
	ticks = log2Ticks{}.Ticks(5, 7)
	chk.NotEmpty(ticks)
}
