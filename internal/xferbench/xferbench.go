// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package xferbench holds the results of the socket data-transfer benchmark
// comparing two-copy, one-copy and zero-copy implementations, and the four
// charts drawn from them.
package xferbench

import (
	"path/filepath"

	"github.com/petenewcomb/benchplot"
	"github.com/petenewcomb/benchplot/internal/style"
)

// DefaultPrefix starts the name of every chart file.
const DefaultPrefix = "MT25070_PartD"

// System describes the machine the results were measured on.
const System = "Ubuntu 24.04 | x86-64 | 12 Cores | 16GB RAM"

// Threads is the client thread count used for every message-size run.
const Threads = 4

// LatencyMessageSize is the message size, in bytes, of the thread-count runs.
const LatencyMessageSize = 1024

var (
	MessageSizes = []float64{64, 256, 1024, 4096}
	ThreadCounts = []float64{1, 2, 4, 8}
)

// Throughput in Gbps by message size.
var Throughput = map[string][]float64{
	"two_copy":  {5.546936, 17.572738, 55.995350, 115.771619},
	"one_copy":  {3.899806, 14.088616, 13.944205, 32.664450},
	"zero_copy": {3.000519, 10.333172, 35.184303, 89.944395},
}

// Latency in microseconds by thread count.
var Latency = map[string][]float64{
	"two_copy":  {0.40, 0.42, 0.56, 0.72},
	"one_copy":  {1.82, 1.90, 2.25, 2.65},
	"zero_copy": {0.62, 0.69, 0.91, 1.26},
}

// CacheMisses by message size.
var CacheMisses = map[string][]float64{
	"two_copy":  {18258493, 30728335, 164344113, 1492154220},
	"one_copy":  {11545767, 75984937, 4278387, 9600764},
	"zero_copy": {7606435, 48170964, 317583736, 158054953},
}

// Cycles is the total CPU cycle count of each message-size run.
var Cycles = map[string][]float64{
	"two_copy":  {162238305756, 161249490159, 161148939038, 156020442234},
	"one_copy":  {160043913965, 158895770861, 135095231857, 133664820069},
	"zero_copy": {156074096500, 157551537201, 154469829502, 139960448008},
}

// CyclesPerByte divides each cycle count by the bytes moved per round, the
// message size times the number of threads.
func CyclesPerByte(cycles, sizes []float64, threads int) []float64 {
	out := make([]float64, len(cycles))
	for i := range cycles {
		out[i] = cycles[i] / (sizes[i] * float64(threads))
	}
	return out
}

func title(s string) string {
	return s + "\n" + System
}

// Charts returns the throughput, latency, cache-miss and cycles-per-byte
// charts, writing to <dir>/<prefix>_<metric>_vs_<variable>.png.
func Charts(dir, prefix string) ([]*benchplot.Chart, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	out := func(name string) string {
		return filepath.Join(dir, prefix+"_"+name+".png")
	}

	cyclesPerByte := make(map[string][]float64, len(Cycles))
	for name, cycles := range Cycles {
		cyclesPerByte[name] = CyclesPerByte(cycles, MessageSizes, Threads)
	}

	specs := []struct {
		name   string
		title  string
		x      []float64
		scale  benchplot.Scale
		xLabel string
		yLabel string
		data   map[string][]float64
	}{
		{
			name:   "throughput_vs_message_size",
			title:  "Throughput vs Message Size (Threads = 4)",
			x:      MessageSizes,
			scale:  benchplot.Log2,
			xLabel: "Message Size (bytes)",
			yLabel: "Throughput (Gbps)",
			data:   Throughput,
		},
		{
			name:   "latency_vs_thread_count",
			title:  "Latency vs Thread Count (Message Size = 1024 bytes)",
			x:      ThreadCounts,
			scale:  benchplot.Linear,
			xLabel: "Thread Count",
			yLabel: "Average Latency (µs)",
			data:   Latency,
		},
		{
			name:   "cache_misses_vs_message_size",
			title:  "Cache Misses vs Message Size (Threads = 4)",
			x:      MessageSizes,
			scale:  benchplot.Log2,
			xLabel: "Message Size (bytes)",
			yLabel: "Cache Misses",
			data:   CacheMisses,
		},
		{
			name:   "cycles_per_byte_vs_message_size",
			title:  "CPU Cycles per Byte vs Message Size (Threads = 4)",
			x:      MessageSizes,
			scale:  benchplot.Log2,
			xLabel: "Message Size (bytes)",
			yLabel: "CPU Cycles per Byte",
			data:   cyclesPerByte,
		},
	}

	charts := make([]*benchplot.Chart, 0, len(specs))
	for _, s := range specs {
		b := benchplot.NewChart(title(s.title)).
			Name(s.name).
			X(s.x, s.scale).
			Labels(s.xLabel, s.yLabel).
			Output(out(s.name))
		for _, name := range style.Names() {
			b.Series(name, s.data[name], style.Lookup(name))
		}
		c, err := b.Build()
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}
