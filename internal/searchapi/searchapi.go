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

// Package searchapi defines the narrow ports the search core talks to
// instead of depending on a concrete board, evaluator, move generator,
// tablebase or protocol implementation. Every type here is consumed,
// never implemented, by internal/search; production boards/evaluators/
// UCI drivers live outside this module and plug in by satisfying these
// interfaces.
package searchapi

import (
	"time"

	"github.com/ironpawn/searchcore/internal/moveslice"
	. "github.com/ironpawn/searchcore/internal/types"
)

// BoardState is the mutable chess position the search core operates on,
// owned one-per-worker. MakeMove/UnmakeMove pairs must nest like a stack.
// MakeMove performs legality validation itself (it returns false instead
// of leaving the board mutated when the move would leave the mover's own
// king in check); every true return must be matched by exactly one
// UnmakeMove on every exit path, including a panic-driven cancellation
// unwind.
type BoardState interface {
	SideToMove() Color
	Ply() int
	SPly() int
	FiftyMoveCounter() int
	InCheck(c Color) bool
	HasNonPawnMaterial(c Color) bool
	IsRepetition(atLeast int) bool
	ZobristKey() Key

	MakeMove(m Move) bool
	UnmakeMove()
	MakeNullMove()
	UnmakeNullMove()

	// PieceCount returns the number of pieces of the given color still on
	// the board - used to decide tablebase eligibility (TB_LARGEST).
	PieceCount(c Color) int

	// IsPawnPush reports whether m moves a pawn into the opponent's last
	// three ranks - the late-move-pruning exemption spec.md §4.5 calls
	// "pawn_push". This needs a piece-type lookup only the board has.
	IsPawnPush(m Move) bool
	String() string
}

// Evaluator produces a side-to-move relative static score for a position,
// and reports positions that are drawn purely on insufficient material.
type Evaluator interface {
	Evaluate(b BoardState) Value
	IsMaterialDraw(b BoardState) bool
}

// MovePhase identifies the staged-generation phase a MoveSelector is in.
type MovePhase int

// Move-selector phases, in the order C3 stages them.
const (
	PhaseTTMove MovePhase = iota
	PhaseGoodCaptures
	PhaseKillers
	PhaseCounterMove
	PhaseQuietHistory
	PhaseBadCaptures
	PhaseEvasions
	PhaseDone
)

// MoveSelector stages moves for a node: TT-move first, then good captures
// (SEE >= 0), killers, the counter-move, history-ordered quiet moves, and
// finally bad captures. In quiescence it restricts to captures, or to
// check evasions when the side to move is in check.
type MoveSelector interface {
	InitNode(b BoardState, quiescence, root, inCheck bool)
	SetTTMove(m Move)
	NextMove(b BoardState) (Move, bool)
	NextQMove(b BoardState) (Move, bool)
	UpdateRootMoveScores(scores map[Move]Value)
	CurrentPhase() MovePhase
}

// SEEProbe is the static-exchange-evaluation collaborator: a cheap
// capture-sequence estimator used for pruning decisions, not full search.
type SEEProbe interface {
	// SeeGE reports whether the exchange value of m is >= threshold,
	// evaluated before the move is made.
	SeeGE(b BoardState, m Move, threshold Value) bool
	// SeePostGE reports the same, evaluated with the move already made
	// (used for SEE-based pruning after make_move, §4.5).
	SeePostGE(b BoardState, m Move, threshold Value) bool
}

// WDL is a tablebase win/draw/loss verdict, from the side-to-move's view.
type WDL int

// Tablebase verdicts.
const (
	WDLUnknown WDL = iota
	WDLLoss
	WDLDraw
	WDLWin
)

// TablebaseProbe queries an endgame tablebase. Probe failures (missing
// files, too many pieces) are reported via the ok return and treated by
// the caller as "no information" (spec.md §7.4), never as an error.
type TablebaseProbe interface {
	ProbeWDL(b BoardState) (wdl WDL, ok bool)
}

// TimeController is the external time-management policy. check_time is
// polled from checkup; new_iteration gates whether another iterative
// deepening pass is worth starting at all.
type TimeController interface {
	CheckTime() bool
	NewIteration(depth int) bool
	Configure(timeLeft, inc time.Duration, movesToGo int)
	ElapsedTime() time.Duration
}

// Reporter delivers UCI-style protocol events. Worker 0 is the only
// worker that polls CheckInput; every worker may report a finished PV.
type Reporter interface {
	CheckInput() (stop bool)
	SendMoveInfo(currMove Move, currMoveNumber int)
	SendPVInfo(depth, seldepth int, score Value, nodes uint64, nps uint64, elapsed time.Duration, pv moveslice.MoveSlice)
}

// StorageEntry is the raw, racy-but-entry-atomic record the hash_tt
// collaborator reads and writes. Values are stored exactly as given -
// mate-distance (ply) adjustment is the transposition-table adapter's
// job, not the storage primitive's (§4.2, §9).
type StorageEntry struct {
	Move  Move
	Depth int8
	Value Value
	Bound BoundType
}

// Storage is the narrow hash_tt primitive (§6): a fixed-width, shared,
// concurrently-accessed cache keyed by Zobrist key. Implementations must
// make a single entry's read atomic with respect to concurrent writers
// (§5, §9) - e.g. via a 128-bit atomic pair with key-XOR validation, or
// cache-line padding with lock striping.
type Storage interface {
	Probe(key Key) (entry StorageEntry, ok bool)
	Store(key Key, entry StorageEntry)
	Hashfull() int
}
