//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNps(t *testing.T) {
	tests := []struct {
		name    string
		nodes   uint64
		elapsed time.Duration
		want    uint64
	}{
		{"one second", 1_000_000, time.Second, 1_000_000},
		{"half second doubles the rate", 500_000, 500 * time.Millisecond, 1_000_000},
		{"two seconds halves the rate", 1_000_000, 2 * time.Second, 500_000},
		{"zero nodes", 0, time.Second, 0},
		{"zero elapsed reports raw nodes", 4_242, 0, 4_242},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nps(tt.nodes, tt.elapsed))
		})
	}
}

func TestMemStat(t *testing.T) {
	s := MemStat()
	assert.Contains(t, s, "heap")
	assert.Contains(t, s, "GC runs")
}

func TestGcWithStats(t *testing.T) {
	s := GcWithStats()
	assert.Contains(t, s, "before GC:")
	assert.Contains(t, s, "after GC:")
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "searchcore.toml")
	require.NoError(t, os.WriteFile(existing, []byte("# test config\n"), 0o644))

	got, err := ResolveFile(existing)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = ResolveFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	// A relative name resolves against the working directory first.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	got, err = ResolveFile("searchcore.toml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "searchcore.toml", filepath.Base(got))
}
