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
	"time"

	"github.com/ironpawn/searchcore/internal/config"
	"github.com/ironpawn/searchcore/internal/moveslice"
	"github.com/ironpawn/searchcore/internal/searchapi"
	"github.com/ironpawn/searchcore/internal/util"
	. "github.com/ironpawn/searchcore/internal/types"
)

// searchRoot is the C6 root-node search: like AlphaBeta but with the
// selector initialised as a root node and ordered by
// GameState.RootMoveScores from earlier iterations, skipping any move
// not in GameState.RootMoves when that list is non-empty, and
// committing best_move/ponder_move/PV updates only once a move's score
// lands inside the aspiration window. Grounded on search_root() in the
// original search.c.
func (w *Worker) searchRoot(depth int, alpha, beta Value) Value {
	w.checkup()
	w.pv[0].Clear()
	w.triedMoves[0].Clear()

	stm := w.Board.SideToMove()
	inCheck := w.Board.InCheck(stm)
	w.Selector.InitNode(w.Board, false, true, inCheck)

	ttMove := MoveNone
	key := w.Board.ZobristKey()
	if config.Settings.Search.UseTT {
		if _, moveHint, _ := w.game.TT.Lookup(key, depth, alpha, beta, 0); moveHint != MoveNone {
			ttMove = moveHint
		}
	}
	w.Selector.SetTTMove(ttMove)
	w.Selector.UpdateRootMoveScores(w.game.RootMoveScores)

	bestMove := ttMove
	bestScore := -ValueInf
	bound := BoundAlpha
	w.currMoveNumber = 0

	for {
		m, ok := w.Selector.NextMove(w.Board)
		if !ok {
			break
		}
		if !rootMoveAllowed(&w.game.RootMoves, m) {
			continue
		}
		w.currMoveNumber++
		w.currMove = m
		if w.ID == 0 && w.game.Reporter != nil && w.depth > w.game.CompletedDepth() {
			w.game.Reporter.SendMoveInfo(m, w.currMoveNumber)
		}

		if !w.makeMove(m) {
			continue
		}
		w.triedMoves[0].PushBack(m)

		newDepth := depth
		if w.Board.InCheck(w.Board.SideToMove()) {
			newDepth++
		}
		var score Value
		if bestScore == -ValueInf || !config.Settings.Search.UsePVS {
			score = -w.AlphaBeta(newDepth-1, -beta, -alpha, true, m)
		} else {
			score = -w.AlphaBeta(newDepth-1, -alpha-1, -alpha, true, m)
			if score > alpha {
				w.stats.RootPvsResearches++
				score = -w.AlphaBeta(newDepth-1, -beta, -alpha, true, m)
			}
		}
		w.unmakeMove()

		if score > bestScore {
			bestScore = score
			bestMove = m

			if score > alpha {
				if score >= beta {
					w.addKiller(0, m)
					bound = BoundBeta
					break
				}
				bound = BoundExact
				alpha = score
				w.savePV(0, m)
				if m.IsQuiet() {
					w.Hist.HistoryUpdate(w.triedMoves[0], depth, stm)
				}

				w.bestMove = m
				w.lastScore = bestScore
				if w.pv[0].Len() > 1 {
					w.ponderMove = w.pv[0].At(1)
				} else {
					w.ponderMove = MoveNone
				}
				w.game.Update(w, bestScore)
			}
		}
	}

	if config.Settings.Search.UseTT {
		w.game.TT.Store(key, bestMove, depth, bestScore, bound, 0)
	}

	return bestScore
}

// FindBestMove is the C6 iterative-deepening driver, the exposed
// search_find_best_move operation (spec.md §6): repeated aspiration-
// windowed calls to searchRoot at increasing depth, staggered by worker
// ID the way lazy-SMP workers are staggered in the original, until a
// stop condition fires. Grounded on search_find_best_move() in the
// original search.c.
func (w *Worker) FindBestMove() {
	if w.ID == 0 && !w.game.Silent && w.game.Log != nil {
		w.game.Log.Debug(util.GcWithStats())
	}

	depth := 1 + w.ID%2
	w.game.ClaimDepth(depth)
	alpha := -ValueInf
	beta := ValueInf
	awindex := 0
	bwindex := 0
	steps := config.Settings.Search.AspirationSteps

	for {
		w.depth = depth
		w.seldepth = 0
		if alpha < -ValueInf {
			alpha = -ValueInf
		}
		if beta > ValueInf {
			beta = ValueInf
		}

		score, reason := w.runRoot(depth, alpha, beta)
		if reason != stopNone {
			break
		}

		if config.Settings.Search.UseAspiration && score <= alpha {
			awindex = clampIndex(awindex+1, len(steps))
			alpha = score - steps[awindex]
			w.resolvingRootFail = true
			w.stats.AspirationFailLow++
			w.stats.AspirationResearches++
			continue
		}
		if config.Settings.Search.UseAspiration && score >= beta {
			bwindex = clampIndex(bwindex+1, len(steps))
			beta = score + steps[bwindex]
			w.stats.AspirationFailHigh++
			w.stats.AspirationResearches++
			continue
		}
		w.resolvingRootFail = false

		if w.game.Reporter != nil && !w.game.Silent {
			w.game.Reporter.SendPVInfo(w.depth, w.seldepth, score, w.nodes+w.qnodes, w.nps(), w.elapsed(), w.pv[0])
		}
		if w.ID == 0 && !w.game.Silent && w.game.Log != nil {
			w.game.Log.Infof("worker %d iteration depth %d finished: score %s, nodes %d, pv %s",
				w.ID, w.depth, score, w.nodes+w.qnodes, w.pv[0].StringUci())
		}

		depth = w.game.CompleteIteration(w, depth)

		if w.game.ExitOnMate && !w.game.Pondering.Load() {
			if score > KnownWin || score < -KnownWin {
				w.game.StopAll(true)
				break
			}
		}

		awindex, bwindex = 0, 0
		if config.Settings.Search.UseAspiration && depth > config.Settings.Search.AspirationFullDepth {
			alpha = score - steps[0]
			beta = score + steps[0]
		} else {
			alpha = -ValueInf
			beta = ValueInf
		}

		if w.game.TC != nil && !w.game.TC.NewIteration(depth) {
			w.game.StopAll(false)
			break
		}
		if depth > w.game.SD {
			w.game.StopAll(true)
			break
		}
	}

	// A ponder search that ran out of depth must wait for ponderhit/stop
	// before reporting a result, so bestmove is never sent too early.
	for w.ID == 0 && w.game.Pondering.Load() {
		stop := w.game.Reporter != nil && w.game.Reporter.CheckInput()
		if stop {
			w.game.StopAll(true)
			break
		}
		if !w.game.Pondering.Load() {
			w.game.StopAll(true)
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// rootMoveAllowed restricts the root search to the externally provided
// root move list (e.g. a protocol layer's "searchmoves" filter). An
// empty list means every generated root move is searched.
func rootMoveAllowed(list *moveslice.MoveSlice, m Move) bool {
	if list.Len() == 0 {
		return true
	}
	for i := 0; i < list.Len(); i++ {
		if list.At(i).MoveOf() == m.MoveOf() {
			return true
		}
	}
	return false
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}

func (w *Worker) elapsed() time.Duration {
	if w.game.TC == nil {
		return 0
	}
	return w.game.TC.ElapsedTime()
}

func (w *Worker) nps() uint64 {
	return util.Nps(w.nodes+w.qnodes, w.elapsed())
}

// GetQuiescenceScore is the supplemented search_get_quiescence_score
// operation (SPEC_FULL.md): runs quiescence alone from the current root
// position with no iterative deepening, for callers that want a
// tactically-settled score without committing to a full search.
// Grounded on search_get_quiscence_score() in the original search.c.
func GetQuiescenceScore(game *GameState, board searchapi.BoardState, selector searchapi.MoveSelector) (score Value, pv moveslice.MoveSlice) {
	w := newWorker(0, board, selector, game)
	defer func() {
		// No cancellation ever crosses the search boundary: a stop mid-
		// quiescence degrades to the static evaluation of the rebalanced
		// position.
		if r := recover(); r != nil {
			if _, ok := r.(searchAbort); !ok {
				panic(r)
			}
			w.rebalanceBoard()
			score = game.Eval.Evaluate(board)
			pv = w.pv[0]
		}
	}()
	score = w.Quiescence(0, -ValueInf, ValueInf)
	return score, w.pv[0]
}
