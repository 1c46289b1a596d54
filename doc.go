// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package benchplot renders labeled-series line charts of benchmark results.
//
// A [Chart] describes one image: a shared X axis, a set of named [Series]
// with their own color, marker and line pattern, axis labels, a title and the
// path of the image to write. Charts are usually assembled with [NewChart]
// immediately before rendering and are not retained afterwards.
//
// [Render] draws a single chart with the default [GonumRenderer] and writes it
// to disk. Every call owns its own figure, so renders are independent of one
// another and [RenderAll] can run several of them concurrently on a bounded
// pool. A chart that fails validation is rejected with a [*ValidationError]
// before anything is drawn; a failure to write the image is reported as an
// [*OutputWriteError] and never leaves a partially written file behind.
package benchplot
