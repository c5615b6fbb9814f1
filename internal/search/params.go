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

package search

import (
	"github.com/ironpawn/searchcore/internal/config"
	. "github.com/ironpawn/searchcore/internal/types"
)

// This file contains thin config-driven lookups for the margin/count
// tables spec.md §6 names (LMP, futility, RFP, razoring, SEE-prune),
// all of which live in config.Settings.Search so a config file can
// retune them. LMR's reduction amount is not table-driven: spec.md
// §4.5 gives it as a fixed two-step formula (reduction 1, +1 past the
// extra-move-number threshold), computed directly in AlphaBeta instead
// of through a continuous depth/move-count surface.

// LmpMovesSearched returns the configured move-count threshold for late
// move pruning at the given depth-left, clamped to the configured table.
func LmpMovesSearched(depth int) int {
	table := config.Settings.Search.LMPMoveCount
	if depth >= len(table) {
		depth = len(table) - 1
	}
	if depth < 0 {
		return 0
	}
	return table[depth]
}

// FutilityMargin returns the configured futility margin for the given
// depth-left, clamped to the configured table.
func FutilityMargin(depth int) Value {
	table := config.Settings.Search.FutilityMargin
	if depth >= len(table) {
		depth = len(table) - 1
	}
	if depth < 0 {
		return 0
	}
	return table[depth]
}

// ReverseFutilityMargin returns the configured reverse futility margin
// for the given depth-left, clamped to the configured table.
func ReverseFutilityMargin(depth int) Value {
	table := config.Settings.Search.RFPMargin
	if depth >= len(table) {
		depth = len(table) - 1
	}
	if depth < 0 {
		return 0
	}
	return table[depth]
}

// RazorMargin returns the configured razoring margin for the given
// depth-left, clamped to the configured table.
func RazorMargin(depth int) Value {
	table := config.Settings.Search.RazorMargin
	if depth >= len(table) {
		depth = len(table) - 1
	}
	if depth < 0 {
		return 0
	}
	return table[depth]
}

// SEEPruneMargin returns the configured SEE-pruning margin for the given
// depth-left, clamped to the configured table.
func SEEPruneMargin(depth int) Value {
	table := config.Settings.Search.SEEPruneMargin
	if depth >= len(table) {
		depth = len(table) - 1
	}
	if depth < 0 {
		return 0
	}
	return table[depth]
}
