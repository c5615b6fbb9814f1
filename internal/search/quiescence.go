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
	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// Quiescence is the C4 component (spec.md §4.4): a capture-and-check-
// evasion-only search extending every leaf of the main search until the
// position is quiet, so a flat static evaluation never has to judge a
// position in the middle of a capture sequence. Grounded node-for-node
// on quiescence() in the original search.c.
func (w *Worker) Quiescence(depth int, alpha, beta Value) Value {
	if depth < 0 {
		w.nodes++
		w.qnodes++
	}

	if trace {
		sply := w.Board.SPly()
		w.game.SLog.Debugf("%0*s ply %-2d qsearch a:%-6d b:%-6d start: %s", sply, "", sply, alpha, beta, w.Board.String())
		defer w.game.SLog.Debugf("%0*s ply %-2d qsearch end", sply, "", sply)
	}

	w.checkup()

	sply := w.Board.SPly()
	w.pv[sply].Clear()

	if w.Board.IsRepetition(1) || w.Board.FiftyMoveCounter() >= 100 {
		return ValueDraw
	}

	staticScore := w.game.Eval.Evaluate(w.Board)

	if sply >= MaxSearchPly {
		return staticScore
	}

	inCheck := w.Board.InCheck(w.Board.SideToMove())
	bestScore := -ValueInf
	if !inCheck {
		bestScore = staticScore
		if config.Settings.Search.UseQSStandpat && staticScore >= beta {
			return staticScore
		}
		if staticScore > alpha {
			alpha = staticScore
		}
	}

	w.Selector.InitNode(w.Board, true, false, inCheck)

	ttMove := MoveNone
	if config.Settings.Search.UseTT {
		key := w.Board.ZobristKey()
		if hit, moveHint, score := w.game.TT.Lookup(key, 0, alpha, beta, sply); hit {
			return score
		} else {
			ttMove = moveHint
		}
	}
	w.Selector.SetTTMove(ttMove)

	foundMove := false
	for {
		m, ok := w.Selector.NextQMove(w.Board)
		if !ok {
			break
		}

		if !inCheck && m.IsCapture() && w.Selector.CurrentPhase() == searchapi.PhaseBadCaptures {
			continue
		}

		if !w.makeMove(m) {
			continue
		}
		foundMove = true
		score := -w.Quiescence(depth-1, -beta, -alpha)
		w.unmakeMove()

		if score > bestScore {
			bestScore = score
			if score > alpha {
				if score >= beta {
					break
				}
				alpha = score
				w.savePV(sply, m)
			}
		}
	}

	if inCheck && !foundMove {
		return -ValueCheckMate + Value(sply)
	}
	return bestScore
}
