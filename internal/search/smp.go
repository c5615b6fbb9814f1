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
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// ErrAlreadySearching is returned by RunFleet when a fleet is still
// running on this game state.
var ErrAlreadySearching = errors.New("search already running")

// IsSearching reports whether a worker fleet currently holds the running
// rendezvous.
func (g *GameState) IsSearching() bool {
	if !g.running.TryAcquire(1) {
		return true
	}
	g.running.Release(1)
	return false
}

// WaitWhileSearching blocks until the current worker fleet (if any) has
// returned.
func (g *GameState) WaitWhileSearching() {
	_ = g.running.Acquire(context.Background(), 1)
	g.running.Release(1)
}

// ShouldStop reports whether the calling worker should unwind (the C7
// coordinator's half of checkup, spec.md §4.8): stop is raised by any
// worker or by the root driver hitting a stop condition; abort
// additionally tells the caller the stop must not be deferred even while
// the worker is mid-resolution of a root aspiration fail.
func (g *GameState) ShouldStop() (stop, abort bool) {
	return g.stop.Load(), g.abort.Load()
}

// StopAll asks every worker in the fleet to unwind, optionally as a hard
// abort that overrides a worker's resolvingRootFail grace period.
func (g *GameState) StopAll(abort bool) {
	g.stop.Store(true)
	if abort {
		g.abort.Store(true)
	}
}

// Update is the lazy-SMP smp_update notification (§5, §7): whenever any
// worker's root search improves its own alpha, its best move and score
// are recorded so the next iteration's UpdateRootMoveScores can start
// every worker's move ordering from the fleet's best information so far,
// not just its own.
func (g *GameState) Update(w *Worker, score Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.RootMoveScores == nil {
		g.RootMoveScores = make(map[Move]Value)
	}
	g.RootMoveScores[w.bestMove.MoveOf()] = score
}

// CompleteIteration is the C7 smp_complete_iteration operation: records
// that worker w finished searching depth, advances the shared
// completedDepth watermark, and returns the depth the worker should
// search next - the smallest depth no other worker has claimed yet, so
// the fleet stays staggered across depths instead of collapsing onto
// the same iteration. Workers are staggered at start too (depth =
// 1 + id%2, §4.6); ClaimDepth registers those initial claims.
func (g *GameState) CompleteIteration(w *Worker, depth int) int {
	for {
		cur := atomic.LoadInt64(&g.completedDepth)
		if int64(depth) <= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&g.completedDepth, cur, int64(depth)) {
			break
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	next := depth + 1
	for g.claimed[next] {
		next++
	}
	g.claimed[next] = true
	return next
}

// ClaimDepth marks depth as being searched by some worker, so
// CompleteIteration never hands the same depth to two workers. Called by
// each worker once for its staggered start depth.
func (g *GameState) ClaimDepth(depth int) {
	g.mu.Lock()
	g.claimed[depth] = true
	g.mu.Unlock()
}

// RunFleet is the C7 SMP coordinator's worker launch: it spawns
// numWorkers lazy-SMP workers sharing g - one shared transposition table,
// one set of stop/abort flags - each over its own board and move
// selector, and blocks until every worker has returned. This generalizes
// the teacher's sync.WaitGroup fan-out in tt.Table.AgeEntries from
// "array slices" to "search workers" using golang.org/x/sync/errgroup.
// Every worker func returns nil (each stop path is a panic recovered in
// runRoot), so Wait only waits; errgroup does not recover panics, and a
// panic that escapes runRoot is not caught here.
func RunFleet(ctx context.Context, g *GameState, numWorkers int, newBoard func(id int) searchapi.BoardState, newSelector func(id int) searchapi.MoveSelector) ([]*Worker, error) {
	if !g.running.TryAcquire(1) {
		return nil, ErrAlreadySearching
	}
	defer g.running.Release(1)

	workers := make([]*Worker, numWorkers)
	grp, _ := errgroup.WithContext(ctx)

	for i := 0; i < numWorkers; i++ {
		id := i
		workers[id] = newWorker(id, newBoard(id), newSelector(id), g)
		grp.Go(func() error {
			workers[id].FindBestMove()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return workers, nil
}
