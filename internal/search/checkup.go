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

// stopReason identifies why a search node unwound through a panic.
type stopReason int

// Reasons a worker can abort mid-search (§4.8).
const (
	stopNone stopReason = iota
	stopCommand
	stopStop
	stopTimeout
)

// searchAbort is the panic payload checkup raises to unwind the
// recursive search straight back to the iterative-deepening loop - the
// Go analogue of the teacher's (and the original's) setjmp/longjmp
// non-local escape. It must only ever be caught by runRoot (and the
// quiescence-only entry point); anything else recovering it would hide
// a real bug.
type searchAbort struct {
	reason stopReason
}

// checkup polls for a reason to stop, exactly mirroring the original's
// checkup(): a cheap should-stop test on every node, with the more
// expensive clock/input poll gated by CheckupMask so it only runs every
// Nth node (§4.8).
func (w *Worker) checkup() {
	if stop, abort := w.game.ShouldStop(); stop {
		if abort || !w.resolvingRootFail {
			panic(searchAbort{stopStop})
		}
	}

	mask := config.Settings.Search.CheckupMask
	if mask > 0 && w.nodes&mask != 0 {
		return
	}

	if w.game.TC != nil && !w.game.TC.CheckTime() {
		w.game.StopAll(false)
		panic(searchAbort{stopTimeout})
	}
	if w.ID == 0 && w.game.Reporter != nil && w.game.Reporter.CheckInput() {
		w.game.StopAll(true)
		panic(searchAbort{stopCommand})
	}
}

// runRoot invokes searchRoot under a recover that turns a searchAbort
// panic into an ordinary (score, reason) return, the same shape as the
// original's setjmp dispatch in search_find_best_move: exception==0
// means score is meaningful, anything else means stop at once. The
// recover also rebalances the board - every make_move/make_null_move
// frame still outstanding on the unwind path is undone, so the worker's
// position is back at the root before the deepening loop continues or
// exits (§4.8, §9).
func (w *Worker) runRoot(depth int, alpha, beta Value) (score Value, reason stopReason) {
	defer func() {
		if r := recover(); r != nil {
			sa, ok := r.(searchAbort)
			if !ok {
				panic(r)
			}
			w.rebalanceBoard()
			reason = sa.reason
		}
	}()
	score = w.searchRoot(depth, alpha, beta)
	return score, stopNone
}
