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

// AlphaBeta is the C5 main search component (spec.md §4.5): fail-soft
// negamax with PVS re-search, reverse futility, razoring, null-move,
// probcut, futility, late-move pruning, SEE pruning, check extension and
// late-move reduction - grounded node-for-node on search() in the
// original search.c, with the teacher's TT/PV/statistics plumbing around
// it. prevMove is the move that led to this node, used only to look up
// and record the counter-move heuristic (spec.md §3's counter-move
// table, absent from the original but named directly by spec.md §3).
func (w *Worker) AlphaBeta(depth int, alpha, beta Value, tryNull bool, prevMove Move) Value {
	pvNode := beta-alpha > 1
	w.nodes++

	stm := w.Board.SideToMove()
	inCheck := w.Board.InCheck(stm)

	if depth <= 0 {
		return w.Quiescence(0, alpha, beta)
	}

	if trace {
		sply := w.Board.SPly()
		w.game.SLog.Debugf("%0*s ply %-2d depth %-2d a:%-6d b:%-6d pv:%-5v start: %s",
			sply, "", sply, depth, alpha, beta, pvNode, w.Board.String())
		defer w.game.SLog.Debugf("%0*s ply %-2d depth %-2d end", sply, "", sply, depth)
	}

	w.checkup()

	sply := w.Board.SPly()
	if sply > w.seldepth {
		w.seldepth = sply
	}
	if sply >= MaxSearchPly {
		return w.game.Eval.Evaluate(w.Board)
	}
	w.pv[sply].Clear()

	if w.Board.IsRepetition(1) || w.Board.FiftyMoveCounter() >= 100 {
		return ValueDraw
	}

	// Mate distance pruning: a mate already found closer to the root
	// makes searching for a longer one pointless.
	if config.Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(sply) {
			alpha = -ValueCheckMate + Value(sply)
		}
		if beta > ValueCheckMate-Value(sply) {
			beta = ValueCheckMate - Value(sply)
		}
		if alpha >= beta {
			w.stats.Mdp++
			return alpha
		}
	}

	w.Selector.InitNode(w.Board, false, false, inCheck)

	ttMove := MoveNone
	key := w.Board.ZobristKey()
	if config.Settings.Search.UseTT {
		if hit, moveHint, score := w.game.TT.Lookup(key, depth, alpha, beta, sply); hit {
			w.stats.TTHit++
			return score
		} else {
			w.stats.TTMiss++
			ttMove = moveHint
		}
	}
	w.Selector.SetTTMove(ttMove)

	if w.game.ProbeWDL && w.game.TB != nil &&
		w.Board.PieceCount(White)+w.Board.PieceCount(Black) <= config.Settings.Search.TBLargest {
		if wdl, ok := w.game.TB.ProbeWDL(w.Board); ok {
			w.stats.TBHits++
			switch wdl {
			case searchapi.WDLWin:
				return KnownWin - Value(sply)
			case searchapi.WDLLoss:
				return -KnownWin + Value(sply)
			default:
				return ValueDraw
			}
		}
	}

	staticScore := w.game.Eval.Evaluate(w.Board)
	w.stats.Evaluations++

	// Reverse futility pruning.
	if config.Settings.Search.UseRFP &&
		depth <= config.Settings.Search.FutilityMaxDepth &&
		!inCheck && !pvNode &&
		w.Board.HasNonPawnMaterial(stm) &&
		staticScore-ReverseFutilityMargin(depth) >= beta {
		w.stats.RfpPrunings++
		return staticScore
	}

	// Razoring.
	if config.Settings.Search.UseRazoring &&
		!inCheck && !pvNode &&
		ttMove == MoveNone &&
		depth <= config.Settings.Search.RazorMaxDepth &&
		staticScore+RazorMargin(depth) <= alpha {
		w.stats.RazorPrunings++
		if depth == 1 {
			return w.Quiescence(0, alpha, beta)
		}
		threshold := alpha - RazorMargin(depth)
		score := w.Quiescence(0, threshold, threshold+1)
		if score <= threshold {
			return score
		}
	}

	// Null-move pruning.
	if tryNull && config.Settings.Search.UseNullMove &&
		!inCheck &&
		depth >= config.Settings.Search.NullMoveMinDepth &&
		w.Board.HasNonPawnMaterial(stm) {
		reduction := config.Settings.Search.NullMoveBaseR + depth/config.Settings.Search.NullMoveDivisor
		w.makeNullMove()
		score := -w.AlphaBeta(depth-reduction-1, -beta, -beta+1, false, MoveNone)
		w.unmakeNullMove()
		if score >= beta {
			w.stats.NullMoveCuts++
			if score < ValueCheckMateThreshold {
				return score
			}
			return beta
		}
	}

	// ProbCut.
	if config.Settings.Search.UseProbCut &&
		!pvNode && !inCheck &&
		depth >= config.Settings.Search.ProbCutDepth &&
		w.Board.HasNonPawnMaterial(stm) {
		w.Selector.InitNode(w.Board, true, false, inCheck)
		w.Selector.SetTTMove(ttMove)
		threshold := beta + config.Settings.Search.ProbCutMargin
		for {
			m, ok := w.Selector.NextQMove(w.Board)
			if !ok {
				break
			}
			if !m.IsCapture() {
				continue
			}
			if w.game.See != nil && !w.game.See.SeeGE(w.Board, m, threshold-staticScore) {
				continue
			}
			if !w.makeMove(m) {
				continue
			}
			score := -w.AlphaBeta(depth-config.Settings.Search.ProbCutDepth+1, -threshold, -threshold+1, true, m)
			w.unmakeMove()
			if score >= threshold {
				w.stats.ProbCutCuts++
				return score
			}
		}
	}
	w.Selector.InitNode(w.Board, false, false, inCheck)
	w.Selector.SetTTMove(ttMove)

	futilityPruning := config.Settings.Search.UseFutility &&
		depth <= config.Settings.Search.FutilityMaxDepth &&
		staticScore+FutilityMargin(depth) <= alpha

	w.triedMoves[sply].Clear()

	bestScore := -ValueInf
	bestMove := MoveNone
	bound := BoundAlpha
	moveNumber := 0
	foundMove := false

	for {
		m, ok := w.Selector.NextMove(w.Board)
		if !ok {
			break
		}

		pawnPush := w.Board.IsPawnPush(m)
		killer := w.isKiller(sply, m)
		hist := w.Hist.HistoryScore(stm, m)

		if !w.makeMove(m) {
			continue
		}

		givesCheck := w.Board.InCheck(w.Board.SideToMove())
		tactical := m.IsCapture() || m.IsPromotion() || inCheck || givesCheck
		moveNumber++
		foundMove = true
		newDepth := depth

		if futilityPruning && moveNumber > 1 && !tactical {
			w.unmakeMove()
			w.stats.FutilityPrunes++
			continue
		}

		if config.Settings.Search.UseLMP &&
			!pvNode &&
			depth <= config.Settings.Search.LMPMaxDepth &&
			moveNumber > LmpMovesSearched(depth) &&
			moveNumber > 1 &&
			!tactical && !pawnPush && !killer &&
			absValue(alpha) < KnownWin &&
			hist == 0 {
			w.unmakeMove()
			w.stats.LmpCuts++
			continue
		}

		if config.Settings.Search.UseSEEPrune &&
			!pvNode && m.MoveOf() != ttMove.MoveOf() &&
			!inCheck && !givesCheck &&
			depth <= config.Settings.Search.SEEPruneMaxDepth &&
			w.game.See != nil &&
			!w.game.See.SeePostGE(w.Board, m, SEEPruneMargin(depth)) {
			w.unmakeMove()
			w.stats.SEEPrunes++
			continue
		}

		if givesCheck && config.Settings.Search.UseCheckExtension {
			newDepth++
			w.stats.CheckExtensions++
		}

		reduction := 0
		if config.Settings.Search.UseLMR &&
			moveNumber > config.Settings.Search.LMRMinMoveNumber &&
			depth > config.Settings.Search.LMRMinDepth &&
			!tactical {
			reduction = 1
			if moveNumber > config.Settings.Search.LMRExtraMoveNumber {
				reduction++
			}
			w.stats.LmrReductions++
		}

		w.triedMoves[sply].PushBack(m)

		var score Value
		if bestScore == -ValueInf || !config.Settings.Search.UsePVS {
			score = -w.AlphaBeta(newDepth-1, -beta, -alpha, true, m)
		} else {
			score = -w.AlphaBeta(newDepth-reduction-1, -alpha-1, -alpha, true, m)
			if score > alpha && reduction > 0 {
				w.stats.LmrResearches++
				score = -w.AlphaBeta(newDepth-1, -alpha-1, -alpha, true, m)
			}
			if pvNode && score > alpha {
				w.stats.PvsResearches++
				score = -w.AlphaBeta(newDepth-1, -beta, -alpha, true, m)
			}
		}
		w.unmakeMove()

		if score > bestScore {
			bestScore = score
			bestMove = m

			if score > alpha {
				if score >= beta {
					w.addKiller(sply, m)
					w.Hist.CounterAdd(prevMove, m)
					if m.IsQuiet() {
						w.Hist.HistoryUpdate(w.triedMoves[sply], depth, stm)
					}
					bound = BoundBeta
					w.stats.BetaCuts++
					if moveNumber == 1 {
						w.stats.BetaCuts1st++
					}
					break
				}
				bound = BoundExact
				alpha = score
				w.savePV(sply, m)
				if m.IsQuiet() {
					w.Hist.HistoryUpdate(w.triedMoves[sply], depth, stm)
				}
			}
		}
	}

	if !foundMove {
		bound = BoundExact
		if inCheck {
			w.stats.Checkmates++
			bestScore = -ValueCheckMate + Value(sply)
		} else {
			w.stats.Stalemates++
			bestScore = ValueDraw
		}
	}

	if config.Settings.Search.UseTT {
		w.game.TT.Store(key, bestMove, depth, bestScore, bound, sply)
	}

	return bestScore
}
