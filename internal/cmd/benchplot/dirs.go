// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"os"
	"path/filepath"

	"github.com/petenewcomb/benchplot"
)

// outputDirs lists the distinct directories the charts write into, each with
// the first chart that writes there.
func outputDirs(charts []*benchplot.Chart) ([]string, []*benchplot.Chart) {
	seen := make(map[string]struct{})
	var dirs []string
	var owners []*benchplot.Chart
	for _, c := range charts {
		dir := filepath.Dir(c.Output)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
		owners = append(owners, c)
	}
	return dirs, owners
}

// createOutputDirs makes sure every output directory exists. A failure is
// reported against the first chart that would have written there.
func createOutputDirs(charts []*benchplot.Chart) error {
	dirs, owners := outputDirs(charts)
	for i, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &benchplot.OutputWriteError{Chart: owners[i].ID(), Path: owners[i].Output, Err: err}
		}
	}
	return nil
}
