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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/ironpawn/searchcore/internal/types"
)

func TestApplyLimits(t *testing.T) {
	g, tc := newTestGame(MaxSearchDepth)

	l := NewSearchLimits()
	l.Depth = 12
	l.Ponder = true
	l.Moves.PushBack(NewMove(12, 28, Normal, PieceTypeNone))
	l.TimeControl = true
	l.WhiteTime = 90 * time.Second
	l.WhiteInc = 2 * time.Second
	l.BlackTime = 30 * time.Second
	l.BlackInc = time.Second
	l.MovesToGo = 40

	g.ApplyLimits(l, Black)

	assert.Equal(t, 12, g.SD)
	assert.True(t, g.Pondering.Load())
	assert.Equal(t, 1, g.RootMoves.Len())
	assert.Equal(t, 30*time.Second, tc.confTimeLeft)
	assert.Equal(t, time.Second, tc.confInc)
	assert.Equal(t, 40, tc.confMovesToGo)
	g.Pondering.Store(false)
}

func TestApplyLimitsMoveTimeOverridesClock(t *testing.T) {
	g, tc := newTestGame(MaxSearchDepth)

	l := NewSearchLimits()
	l.TimeControl = true
	l.WhiteTime = 90 * time.Second
	l.MoveTime = 5 * time.Second

	g.ApplyLimits(l, White)

	assert.Equal(t, 5*time.Second, tc.confTimeLeft)
	assert.Equal(t, time.Duration(0), tc.confInc)
	// A bare movetime search keeps the depth ceiling untouched.
	assert.Equal(t, MaxSearchDepth, g.SD)
}

func TestRootMoveFilter(t *testing.T) {
	g, _ := newTestGame(2)
	board := newTestBoard("4k3/8/4K3/8/8/8/8/7R w - - 0 1")
	w := newTestWorker(g, board)

	// Restrict the root to a single non-mating rook move: the search must
	// commit that move even though the mate is generated too.
	only := NewMove(7, 6, Normal, PieceTypeNone) // h1g1
	g.RootMoves.PushBack(only)

	w.FindBestMove()

	assert.Equal(t, only.MoveOf(), w.bestMove.MoveOf())
}
