// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// A Renderer draws a chart and writes it to the chart's output path.
// Implementations must not retain any state between calls.
type Renderer interface {
	Render(c *Chart) error
}

// Render draws c with the default [GonumRenderer].
func Render(c *Chart) error {
	return GonumRenderer{}.Render(c)
}

// imageFormat returns the lower-case output format implied by path, defaulting
// to png when the path has no extension.
func imageFormat(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "":
		return "png"
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	}
	return ext
}

// writeImage streams the encoded image into a temporary file next to path and
// renames it into place. The temporary file is removed on any failure, so
// path either holds a complete image or is left untouched.
func writeImage(c *Chart, path string, image io.WriterTo) (err error) {
	fail := func(err error) error {
		return &OutputWriteError{Chart: c.ID(), Path: path, Err: err}
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fail(err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()
	if _, err = image.WriteTo(f); err != nil {
		return fail(err)
	}
	if err = f.Close(); err != nil {
		return fail(err)
	}
	// CreateTemp uses mode 0600; images are meant to be shared.
	if err = os.Chmod(tmp, 0644); err != nil {
		return fail(err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fail(err)
	}
	return nil
}

// writerToFunc adapts a function to io.WriterTo.
type writerToFunc func(w io.Writer) (int64, error)

func (f writerToFunc) WriteTo(w io.Writer) (int64, error) {
	return f(w)
}

// countingWriter tracks the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// observedRender wraps one render with a span, metrics and debug logging.
func observedRender(ctx context.Context, r Renderer, c *Chart) error {
	tracer := otel.Tracer("benchplot")
	ctx, span := tracer.Start(ctx, "benchplot.render")
	defer span.End()
	span.SetAttributes(
		attribute.String("chart", c.ID()),
		attribute.String("path", c.Output),
		attribute.Int("series", len(c.Series)),
	)

	meter := otel.GetMeterProvider().Meter("benchplot")
	renderCounter, _ := meter.Int64Counter("benchplot.render.count")
	renderDuration, _ := meter.Float64Histogram("benchplot.render.duration")
	attrs := metric.WithAttributes(attribute.String("chart", c.ID()))

	logger := zap.L()
	logger.Debug("Rendering chart",
		zap.String("chart", c.ID()),
		zap.String("path", c.Output))

	startTime := time.Now()
	err := r.Render(c)
	duration := time.Since(startTime)

	renderCounter.Add(ctx, 1, attrs)
	renderDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		errorCounter, _ := meter.Int64Counter("benchplot.render.errors")
		errorCounter.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("Chart render failed",
			zap.String("chart", c.ID()),
			zap.String("path", c.Output),
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}
	logger.Debug("Chart rendered",
		zap.String("chart", c.ID()),
		zap.String("path", c.Output),
		zap.Duration("duration", duration))
	return nil
}

// asOutputError makes sure encoding failures surface as OutputWriteErrors
// while leaving validation errors alone.
func asOutputError(c *Chart, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var oe *OutputWriteError
	if errors.As(err, &ve) || errors.As(err, &oe) {
		return err
	}
	return &OutputWriteError{Chart: c.ID(), Path: c.Output, Err: err}
}

func unsupportedFormat(c *Chart, format string) error {
	return &OutputWriteError{Chart: c.ID(), Path: c.Output, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
}
