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

// Package util carries the few helpers the search core needs around the
// standard library: node-rate arithmetic for PV reporting, heap/GC
// snapshots for the search log, and config-file path resolution.
package util

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

// Nps converts a node count and the elapsed search time into nodes per
// second for UCI-style reporting. A search reported before the clock
// has advanced gets the raw node count rather than a division by zero.
func Nps(nodes uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return nodes
	}
	return uint64(float64(nodes) / elapsed.Seconds())
}

// MemStat is a one-line snapshot of the heap and the collector,
// formatted with thousands separators for the search log.
func MemStat() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return out.Sprintf("heap %d bytes in %d objects, %d bytes allocated total, %d GC runs",
		ms.HeapAlloc, ms.HeapObjects, ms.TotalAlloc, ms.NumGC)
}

// GcWithStats forces a collection between two MemStat snapshots and
// reports both plus the pause, so the log line at search start shows
// what the previous search left on the heap and what it cost to clear.
func GcWithStats() string {
	before := MemStat()
	start := time.Now()
	runtime.GC()
	return fmt.Sprintf("before GC: %s | GC %d ms | after GC: %s",
		before, time.Since(start).Milliseconds(), MemStat())
}
