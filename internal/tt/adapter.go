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

package tt

import (
	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// Adapter is the C2 transposition-table component: it sits in front of a
// raw searchapi.Storage and adds the two things the storage primitive
// itself must not know about - mate-distance (ply) rebasing, and the
// alpha/beta cut-window decision a caller can act on directly.
type Adapter struct {
	store searchapi.Storage
}

// NewAdapter wraps an existing searchapi.Storage (typically a *Table).
func NewAdapter(store searchapi.Storage) *Adapter {
	return &Adapter{store: store}
}

// Lookup probes the table for key. hit is true only when the stored
// entry's bound lets the caller cut at the given window; moveHint is
// returned whenever an entry exists at all (even on a non-cutting probe)
// so the caller can still use it for move ordering. score is only
// meaningful when hit is true.
func (a *Adapter) Lookup(key Key, depth int, alpha, beta Value, ply int) (hit bool, moveHint Move, score Value) {
	se, ok := a.store.Probe(key)
	if !ok {
		return false, MoveNone, ValueNA
	}
	moveHint = se.Move

	if int(se.Depth) < depth {
		return false, moveHint, ValueNA
	}

	ttValue := valueFromTT(se.Value, ply)
	if !ttValue.IsValid() {
		return false, moveHint, ValueNA
	}

	switch se.Bound {
	case BoundExact:
		hit = true
	case BoundAlpha:
		hit = ttValue <= alpha
	case BoundBeta:
		hit = ttValue >= beta
	}
	if !hit {
		return false, moveHint, ValueNA
	}
	return true, moveHint, ttValue
}

// Store records a search result, rebasing mate scores to root distance
// before handing the record to the raw storage primitive (§4.2, §9).
func (a *Adapter) Store(key Key, move Move, depth int, value Value, bound BoundType, ply int) {
	a.store.Store(key, searchapi.StorageEntry{
		Move:  move,
		Depth: int8(depth),
		Value: valueToTT(value, ply),
		Bound: bound,
	})
}

// Hashfull reports the underlying storage's fill ratio in permill, for
// UCI "info hashfull" reporting.
func (a *Adapter) Hashfull() int {
	return a.store.Hashfull()
}

// valueToTT rebases a ply-relative mate score to a root-relative one
// before it is stored, so that a later probe at a different ply (and
// possibly a different search) can recover the correct distance to mate.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			value += Value(ply)
		} else {
			value -= Value(ply)
		}
	}
	return value
}

// valueFromTT is the inverse of valueToTT, applied when a stored score is
// read back in at the current ply.
func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			value -= Value(ply)
		} else {
			value += Value(ply)
		}
	}
	return value
}
