// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot_test

import (
	"strings"
	"testing"

	"github.com/petenewcomb/benchplot"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDeriveLabel(t *testing.T) {
	chk := require.New(t)
	for name, want := range map[string]string{
		"zero_copy":  "Zero Copy",
		"one_copy":   "One Copy",
		"two_copy":   "Two Copy",
		"":           "",
		"ZERO_COPY":  "Zero Copy",
		"tcp_v4":     "Tcp V4",
		"a1b_c":      "A1B C",
		"__lead":     "  Lead",
		"Zero Copy":  "Zero Copy",
		"o'neil_run": "O'Neil Run",
		"中a_copy":    "中A Copy",
		"ǆx":         "ǅx",
	} {
		chk.Equal(want, benchplot.DeriveLabel(name), "name %q", name)
	}
}

func TestDeriveLabelIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z0-9_ ]{0,24}`).Draw(t, "name")
		once := benchplot.DeriveLabel(name)
		require.Equal(t, once, benchplot.DeriveLabel(name), "not deterministic")
		require.Equal(t, once, benchplot.DeriveLabel(once), "not idempotent")
		require.NotContains(t, once, "_")
		require.Equal(t, len(name), len(once))
		require.Equal(t, strings.ToLower(strings.ReplaceAll(name, "_", " ")), strings.ToLower(once))
	})
}
