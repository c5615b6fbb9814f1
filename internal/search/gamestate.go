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
	"sync"
	"sync/atomic"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	ironlogging "github.com/ironpawn/searchcore/internal/logging"
	"github.com/ironpawn/searchcore/internal/moveslice"
	"github.com/ironpawn/searchcore/internal/searchapi"
	"github.com/ironpawn/searchcore/internal/tt"
	. "github.com/ironpawn/searchcore/internal/types"
)

// trace gates the high-volume per-node search trace logger, exactly as
// the teacher's alphabeta.go gates its own slog calls: off by default so
// the hot recursive path never pays string-formatting cost, flippable by
// a caller that wants a node-by-node trace of one search.
var trace = false

// GameState is the state shared by every worker of one lazy-SMP search
// (C7, spec.md §3, §5, §7): the transposition table, the external
// collaborators reached through internal/searchapi, and the handful of
// coordination flags/counters that must be visible to the whole fleet.
// Per-worker heuristic tables, PV lines and the board itself live on
// Worker instead - nothing in GameState is worker-private.
type GameState struct {
	TT       *tt.Adapter
	Eval     searchapi.Evaluator
	See      searchapi.SEEProbe
	TB       searchapi.TablebaseProbe
	TC       searchapi.TimeController
	Reporter searchapi.Reporter

	// Log is the general operational logger (search start/finish,
	// iteration summaries); SLog is the high-volume per-node trace
	// logger only consulted when trace is set (teacher's log/slog split
	// in internal/search/search.go and alphabeta.go).
	Log  *logging.Logger
	SLog *logging.Logger

	ExitOnMate bool
	Pondering  atomic.Bool
	ProbeWDL   bool
	Silent     bool
	SD         int // configured maximum search depth for this search

	RootMoves      moveslice.MoveSlice
	RootMoveScores map[Move]Value

	stop  atomic.Bool
	abort atomic.Bool

	// running is held for the lifetime of a worker fleet, giving callers
	// the IsSearching/WaitWhileSearching rendezvous without a busy flag.
	running *semaphore.Weighted

	completedDepth int64 // atomic, read/written via atomic.*Int64

	mu      sync.Mutex
	claimed map[int]bool
}

// NewGameState wires a fresh game state around the given shared
// transposition table and external collaborators. Any of eval/see/tb/tc/
// reporter may be nil if the caller's use case does not need it (e.g. a
// test driving only quiescence does not need a TablebaseProbe).
func NewGameState(store searchapi.Storage, eval searchapi.Evaluator, see searchapi.SEEProbe, tb searchapi.TablebaseProbe, tc searchapi.TimeController, reporter searchapi.Reporter) *GameState {
	return &GameState{
		TT:       tt.NewAdapter(store),
		Eval:     eval,
		See:      see,
		TB:       tb,
		TC:       tc,
		Reporter: reporter,
		Log:      ironlogging.GetLog(),
		SLog:     ironlogging.GetSearchTraceLog(),
		running:  semaphore.NewWeighted(1),
		claimed:  make(map[int]bool),
	}
}

// ResetData is the exposed search_reset_data operation (spec.md §6): it
// clears the root move list and resets the per-search defaults before a
// new search begins. It does not touch the transposition table - that
// persists across searches by design (§4.2).
func (g *GameState) ResetData() {
	g.RootMoves = g.RootMoves[:0]
	g.RootMoveScores = make(map[Move]Value)
	g.ExitOnMate = true
	g.Silent = false
	g.SD = MaxSearchDepth
	g.stop.Store(false)
	g.abort.Store(false)
	atomic.StoreInt64(&g.completedDepth, 0)
	g.mu.Lock()
	g.claimed = make(map[int]bool)
	g.mu.Unlock()
}

// CompletedDepth returns the depth of the most recently fully-completed
// iteration across the whole worker fleet - used to decide whether
// worker 0's current-move report is still useful (§4.6).
func (g *GameState) CompletedDepth() int {
	return int(atomic.LoadInt64(&g.completedDepth))
}

// MaxSearchDepth is the hard ceiling on iterative deepening, mirroring
// the teacher's MaxDepth constant.
const MaxSearchDepth = MaxSearchPly
