// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"fmt"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrNoSeries = constError("chart has no series")
const ErrDuplicateSeries = constError("duplicate series name")
const ErrLengthMismatch = constError("series length does not match x axis")
const ErrNonPositiveLog = constError("log scale requires positive x values")
const ErrNoOutput = constError("chart has no output path")
const ErrNoXValues = constError("chart has no x values")
const ErrUnsupportedFormat = constError("unsupported image format")
const ErrRenderPanic = constError("renderer panicked")

// ValidationError reports a chart that cannot be drawn. It is returned before
// any drawing resources are acquired.
type ValidationError struct {
	Chart  string
	Series string // empty when the problem is not specific to one series
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Series != "" {
		return fmt.Sprintf("invalid chart %q: series %q: %v", e.Chart, e.Series, e.Err)
	}
	return fmt.Sprintf("invalid chart %q: %v", e.Chart, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OutputWriteError reports a failure to encode or save a chart image.
type OutputWriteError struct {
	Chart string
	Path  string
	Err   error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("render %s to %s: %v", e.Chart, e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
