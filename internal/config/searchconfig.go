/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"github.com/ironpawn/searchcore/internal/types"
)

// searchConfiguration turns every pruning/reduction/extension toggle and
// tuning constant named in the search design into a named, documented
// field instead of a scattered literal, so a config file can override
// them without touching code. NumWorkers, TTSizeMB, UseQuiescence,
// UseKiller, UseCounter, UseHistory, UseTTMove, UseTTValue, UseTablebase,
// ExitOnMate and KnownWin are not read by any package, so overriding
// them has no effect.
type searchConfiguration struct {
	// Concurrency (C7)
	NumWorkers  int
	TTSizeMB    int
	CheckupMask uint64

	// Quiescence (C4)
	UseQuiescence bool
	UseQSStandpat bool

	// Move ordering / heuristic tables (C1, C3)
	UsePVS       bool
	UseKiller    bool
	UseCounter   bool
	UseHistory   bool
	MaxHistory   int64

	// Transposition table (C2)
	UseTT      bool
	UseTTMove  bool
	UseTTValue bool

	// Tablebase (out of scope for the probe itself, in scope for the gate)
	UseTablebase bool
	TBLargest    int

	// Aspiration windows (C6)
	UseAspiration       bool
	AspirationSteps     []types.Value
	AspirationFullDepth int // use full (-inf,+inf) window while iterationDepth <= this

	// Reverse futility pruning (§4.5)
	UseRFP    bool
	RFPMargin []types.Value // indexed by depth, [0] unused

	// Razoring (§4.5)
	UseRazoring    bool
	RazorMargin    []types.Value
	RazorMaxDepth  int

	// Null-move pruning (§4.5)
	UseNullMove      bool
	NullMoveMinDepth int
	NullMoveBaseR    int
	NullMoveDivisor  int

	// ProbCut (§4.5)
	UseProbCut    bool
	ProbCutMargin types.Value
	ProbCutDepth  int

	// Futility pruning (§4.5)
	UseFutility    bool
	FutilityMargin []types.Value
	FutilityMaxDepth int

	// Late move pruning (§4.5)
	UseLMP       bool
	LMPMoveCount []int
	LMPMaxDepth  int

	// SEE pruning (§4.5)
	UseSEEPrune    bool
	SEEPruneMargin []types.Value
	SEEPruneMaxDepth int

	// Check extension (§4.5)
	UseCheckExtension bool

	// Late move reduction (§4.5)
	UseLMR             bool
	LMRMinMoveNumber   int
	LMRMinDepth        int
	LMRExtraMoveNumber int

	// Mate distance pruning / exit-on-mate (§4.6, §9)
	UseMDP      bool
	ExitOnMate  bool
	KnownWin    types.Value
}

// sets defaults which may be overwritten by a config file.
func init() {
	Settings.Search.NumWorkers = 1
	Settings.Search.TTSizeMB = 64
	Settings.Search.CheckupMask = 1023

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true
	Settings.Search.UseCounter = true
	Settings.Search.UseHistory = true
	Settings.Search.MaxHistory = 1 << 24

	Settings.Search.UseTT = true
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true

	Settings.Search.UseTablebase = false
	Settings.Search.TBLargest = 6

	Settings.Search.UseAspiration = true
	Settings.Search.AspirationSteps = []types.Value{25, 50, 100, 200, 400, types.ValueInf}
	Settings.Search.AspirationFullDepth = 5

	Settings.Search.UseRFP = true
	Settings.Search.RFPMargin = []types.Value{0, 300, 500, 900}

	Settings.Search.UseRazoring = true
	Settings.Search.RazorMargin = []types.Value{0, 100, 200, 400}
	Settings.Search.RazorMaxDepth = 3

	Settings.Search.UseNullMove = true
	Settings.Search.NullMoveMinDepth = 4 // depth > 3
	Settings.Search.NullMoveBaseR = 2
	Settings.Search.NullMoveDivisor = 6

	Settings.Search.UseProbCut = true
	Settings.Search.ProbCutMargin = 210
	Settings.Search.ProbCutDepth = 5

	Settings.Search.UseFutility = true
	Settings.Search.FutilityMargin = []types.Value{0, 300, 500, 900}
	Settings.Search.FutilityMaxDepth = 3

	Settings.Search.UseLMP = true
	Settings.Search.LMPMoveCount = []int{0, 5, 10, 20, 35, 55}
	Settings.Search.LMPMaxDepth = 5 // depth < 6

	Settings.Search.UseSEEPrune = true
	Settings.Search.SEEPruneMargin = []types.Value{0, -100, -200, -300, -400}
	Settings.Search.SEEPruneMaxDepth = 4 // depth < 5

	Settings.Search.UseCheckExtension = true

	Settings.Search.UseLMR = true
	Settings.Search.LMRMinMoveNumber = 3
	Settings.Search.LMRMinDepth = 3
	Settings.Search.LMRExtraMoveNumber = 6

	Settings.Search.UseMDP = true
	Settings.Search.ExitOnMate = true
	Settings.Search.KnownWin = types.KnownWin
}
