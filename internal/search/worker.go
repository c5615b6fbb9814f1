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
	"github.com/ironpawn/searchcore/internal/history"
	"github.com/ironpawn/searchcore/internal/moveslice"
	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// Worker is one lazy-SMP search thread (spec.md §3, §5): its own board,
// move selector and heuristic tables, sharing only the transposition
// table and the coordination state in GameState with its siblings.
type Worker struct {
	ID int

	Board    searchapi.BoardState
	Selector searchapi.MoveSelector
	Hist     *history.History

	game *GameState

	depth    int
	seldepth int
	nodes    uint64
	qnodes   uint64

	currMove       Move
	currMoveNumber int

	bestMove   Move
	ponderMove Move
	lastScore  Value

	// resolvingRootFail is true while an aspiration-window re-search is
	// in flight at the root: checkup must not abort the worker on a plain
	// stop request while this is set, only on a hard abort (§4.6, §4.8).
	resolvingRootFail bool

	pv         [MaxSearchPly + 1]moveslice.MoveSlice
	triedMoves [MaxSearchPly + 1]moveslice.MoveSlice

	// nullFrames[i] marks whether the i-th outstanding make on the board
	// was a null move, so a cancellation unwind can undo each frame with
	// the matching unmake call (§4.8).
	nullFrames []bool

	stats Statistics
}

// newWorker creates a worker bound to board/selector and the shared game
// state. Each worker owns its board and selector exclusively; only the
// game state's transposition table and coordination flags are shared.
func newWorker(id int, board searchapi.BoardState, selector searchapi.MoveSelector, game *GameState) *Worker {
	w := &Worker{
		ID:       id,
		Board:    board,
		Selector: selector,
		Hist:     history.NewHistory(),
		game:     game,
	}
	for i := range w.pv {
		w.pv[i] = *moveslice.NewMoveSlice(MaxSearchPly + 1)
	}
	for i := range w.triedMoves {
		w.triedMoves[i] = *moveslice.NewMoveSlice(64)
	}
	w.nullFrames = make([]bool, 0, MaxSearchPly+1)
	return w
}

// makeMove/unmakeMove and their null-move counterparts wrap the board's
// make/unmake pairs with a frame record, so rebalanceBoard can undo
// every outstanding frame when checkup panics out of deep recursion.
// The search must never call the board's make/unmake directly.
func (w *Worker) makeMove(m Move) bool {
	if !w.Board.MakeMove(m) {
		return false
	}
	w.nullFrames = append(w.nullFrames, false)
	return true
}

func (w *Worker) unmakeMove() {
	w.Board.UnmakeMove()
	w.nullFrames = w.nullFrames[:len(w.nullFrames)-1]
}

func (w *Worker) makeNullMove() {
	w.Board.MakeNullMove()
	w.nullFrames = append(w.nullFrames, true)
}

func (w *Worker) unmakeNullMove() {
	w.Board.UnmakeNullMove()
	w.nullFrames = w.nullFrames[:len(w.nullFrames)-1]
}

// rebalanceBoard undoes every make frame still outstanding after a
// non-local escape, newest first, restoring the board to the state it
// had when the deepening loop entered the search.
func (w *Worker) rebalanceBoard() {
	for i := len(w.nullFrames) - 1; i >= 0; i-- {
		if w.nullFrames[i] {
			w.Board.UnmakeNullMove()
		} else {
			w.Board.UnmakeMove()
		}
	}
	w.nullFrames = w.nullFrames[:0]
}

// BestMove returns the last root move whose score landed strictly inside
// the root window. It is committed as soon as that happens, including in
// an iteration that later fails high or is aborted, and is MoveNone until
// the first such move.
func (w *Worker) BestMove() Move {
	return w.bestMove
}

// PonderMove returns the expected reply to BestMove, taken from the
// committed principal variation, or MoveNone when the PV is one ply long.
func (w *Worker) PonderMove() Move {
	return w.ponderMove
}

// LastScore returns the score committed together with BestMove.
func (w *Worker) LastScore() Value {
	return w.lastScore
}

// PV returns the committed principal variation from the root.
func (w *Worker) PV() *moveslice.MoveSlice {
	return &w.pv[0]
}

// NodesVisited returns the total node count including quiescence nodes.
func (w *Worker) NodesVisited() uint64 {
	return w.nodes + w.qnodes
}

// Statistics returns the worker's search counters.
func (w *Worker) Statistics() *Statistics {
	return &w.stats
}

// savePV splices move followed by the child node's already-computed PV
// into this node's PV line at ply - the teacher's savePV, generalized to
// operate through the searchapi move types instead of concrete ones.
func (w *Worker) savePV(ply int, move Move) {
	line := &w.pv[ply]
	line.Clear()
	line.PushBack(move)
	child := &w.pv[ply+1]
	for i := 0; i < child.Len(); i++ {
		line.PushBack(child.At(i))
	}
}

// isKiller reports whether m is one of the two killer moves recorded for
// ply, comparing bare moves so an encoded sort value never breaks the
// match.
func (w *Worker) isKiller(ply int, m Move) bool {
	bare := m.MoveOf()
	return w.Hist.Killers[ply][0].MoveOf() == bare || w.Hist.Killers[ply][1].MoveOf() == bare
}

// addKiller records m as a killer at ply unless it is a capture that
// does not lose material by SEE - such a capture is already ordered
// ahead of killers by the move selector, so storing it here is wasted.
func (w *Worker) addKiller(ply int, m Move) {
	nonLosing := false
	if m.IsCapture() && w.game.See != nil {
		nonLosing = w.game.See.SeeGE(w.Board, m, ValueZero)
	}
	w.Hist.KillerAdd(ply, m, m.IsCapture(), nonLosing)
}

func absValue(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}
