// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type rendererFunc func(c *Chart) error

func (f rendererFunc) Render(c *Chart) error {
	return f(c)
}

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func spanAttrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestObservedRenderSpan(t *testing.T) {
	chk := require.New(t)
	exporter := recordSpans(t)
	c := throughputChart(filepath.Join(t.TempDir(), "throughput.png"))

	chk.NoError(observedRender(context.Background(), GonumRenderer{}, c))

	spans := exporter.GetSpans()
	chk.Len(spans, 1)
	span := spans[0]
	chk.Equal("benchplot.render", span.Name)
	attrs := spanAttrs(span.Attributes)
	chk.Equal("throughput", attrs["chart"].AsString())
	chk.Equal(c.Output, attrs["path"].AsString())
	chk.Equal(int64(1), attrs["series"].AsInt64())
	chk.NotEqual(codes.Error, span.Status.Code)
}

func TestObservedRenderFailureSpan(t *testing.T) {
	chk := require.New(t)
	exporter := recordSpans(t)
	c := throughputChart(filepath.Join(t.TempDir(), "broken.png"))
	failing := rendererFunc(func(c *Chart) error {
		return &OutputWriteError{Chart: c.ID(), Path: c.Output, Err: os.ErrPermission}
	})

	err := observedRender(context.Background(), failing, c)
	chk.ErrorIs(err, os.ErrPermission)

	spans := exporter.GetSpans()
	chk.Len(spans, 1)
	span := spans[0]
	chk.Equal("benchplot.render", span.Name)
	chk.Equal("broken", spanAttrs(span.Attributes)["chart"].AsString())
	chk.Equal(codes.Error, span.Status.Code)
	chk.Equal(err.Error(), span.Status.Description)
	chk.NotEmpty(span.Events, "error event recorded")
	chk.Equal("exception", span.Events[0].Name)
}
