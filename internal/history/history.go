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

// Package history provides the per-worker data structures updated during
// search to give the move selector valuable move-ordering hints: a
// depth-weighted history table, an ordered killer-move pair per ply, and
// a counter-move table.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ironpawn/searchcore/internal/config"
	"github.com/ironpawn/searchcore/internal/moveslice"
	. "github.com/ironpawn/searchcore/internal/types"
)

var out = message.NewPrinter(language.German)

// History is the bundle of move-ordering heuristic tables owned by a
// single search worker. None of it is shared across workers: the
// accuracy loss from duplicated, worker-local tables is accepted in
// exchange for freedom from cross-worker contention.
type History struct {
	// Count[side][from][to] is the depth-weighted history score for a
	// quiet move, bounded by config.Settings.Search.MaxHistory.
	Count [2][64][64]int64

	// Killers[ply] holds the ordered pair (killer0, killer1) of quiet
	// (or non-losing-free) moves that have produced a beta cutoff at
	// this search ply.
	Killers [MaxSearchPly][2]Move

	// Counter[side][from][to] maps the previous move (keyed by its own
	// from/to squares, mirroring the teacher's CounterMoves table) to a
	// refutation move - a cheaper surrogate than keying by piece type,
	// which would require a board query the table itself doesn't have.
	Counter [2][64][64]Move
}

// NewHistory creates a new, zeroed History instance.
func NewHistory() *History {
	return &History{}
}

// HistoryUpdate applies the depth-weighted history update for one node's
// move list: every quiet move tried before the move that produced the
// cutoff is penalized, and that move itself is rewarded by depth.
// Captures and en-passant captures are ignored entirely. side is the
// color that owns the moves in list (the side to move at this node).
func (h *History) HistoryUpdate(list moveslice.MoveSlice, depth int, side Color) {
	last := list.Len() - 1
	for i := 0; i <= last; i++ {
		m := list.At(i)
		if !m.IsQuiet() {
			continue
		}
		from, to := m.From(), m.To()
		if i == last {
			h.Count[side][from][to] += int64(depth)
		} else {
			h.Count[side][from][to] -= int64(depth)
			if h.Count[side][from][to] < 0 {
				h.Count[side][from][to] = 0
			}
		}
	}
	h.rescaleIfNeeded()
}

// rescaleIfNeeded halves every history entry as soon as any entry
// exceeds the configured maximum, keeping the table bounded.
func (h *History) rescaleIfNeeded() {
	max := config.Settings.Search.MaxHistory
	overflow := false
loop:
	for c := 0; c < 2; c++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				if h.Count[c][f][t] > max {
					overflow = true
					break loop
				}
			}
		}
	}
	if !overflow {
		return
	}
	for c := 0; c < 2; c++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				h.Count[c][f][t] /= 2
			}
		}
	}
}

// HistoryScore returns the combined move-ordering score for a quiet move.
func (h *History) HistoryScore(side Color, m Move) int64 {
	return h.Count[side][m.From()][m.To()]
}

// KillerAdd inserts m as a killer move for ply, shifting the existing
// killer0 down to killer1 unless m already equals killer0. Captures that
// are not losing by SEE (the caller determines this, since only the
// caller has access to the board and the SEE collaborator) are rejected:
// a good or equal capture is already ordered ahead of killers by the
// move selector, so storing it here would be redundant.
func (h *History) KillerAdd(ply int, m Move, isCapture, nonLosingBySEE bool) {
	if isCapture && nonLosingBySEE {
		return
	}
	m = m.MoveOf()
	if h.Killers[ply][0].MoveOf() == m {
		return
	}
	h.Killers[ply][1] = h.Killers[ply][0]
	h.Killers[ply][0] = m
}

// CounterAdd records move as the refutation played in response to prev.
func (h *History) CounterAdd(prev, move Move) {
	if prev == MoveNone {
		return
	}
	h.Counter[0][prev.From()][prev.To()] = move.MoveOf()
	h.Counter[1][prev.From()][prev.To()] = move.MoveOf()
}

// CounterMove returns the recorded refutation for prev, or MoveNone.
func (h *History) CounterMove(side Color, prev Move) Move {
	if prev == MoveNone {
		return MoveNone
	}
	return h.Counter[side][prev.From()][prev.To()]
}

// ClearKillers zeroes the killer table for every ply - called at the
// start of a new search since killers are only valid within one search.
func (h *History) ClearKillers() {
	h.Killers = [MaxSearchPly][2]Move{}
}

// ClearAll zeroes every table - called on a new game.
func (h *History) ClearAll() {
	h.Count = [2][64][64]int64{}
	h.Counter = [2][64][64]Move{}
	h.ClearKillers()
}

func (h History) String() string {
	sb := strings.Builder{}
	for sf := SqA1; sf < SqNone; sf++ {
		for st := SqA1; st < SqNone; st++ {
			sb.WriteString(out.Sprintf("Move=%s%s: ", sf.String(), st.String()))
			for c := White; c <= Black; c++ {
				sb.WriteString(out.Sprintf("%s=%-7d ", c.String(), h.Count[c][sf][st]))
			}
			sb.WriteString(out.Sprintf("cm=%s\n", h.Counter[0][sf][st].StringUci()))
		}
	}
	return sb.String()
}
