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
	"sync/atomic"

	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// entry is one slot of the table: a 64-bit packed record plus a
// key-XOR guard word, each held in its own atomic.Uint64. The teacher's
// TtEntry (internal/transpositiontable/ttentry.go) is not safe for
// concurrent access; lazy SMP requires it to be (§5, §9). Packing the
// record into one word and pairing it with key^record lets a reader
// detect a torn read without a lock: recombining a mismatched pair of
// words recomputes a key that will not match the one being looked up,
// so the caller simply treats it as a miss.
type entry struct {
	keyXor atomic.Uint64
	data   atomic.Uint64
}

const (
	moveBits  = 17
	moveShift = 0
	moveMask  = uint64(1)<<moveBits - 1

	valueShift = moveShift + moveBits // 17
	valueMask  = uint64(0xFFFF) << valueShift

	depthShift = valueShift + 16 // 33
	depthMask  = uint64(0x7F) << depthShift

	boundShift = depthShift + 7 // 40
	boundMask  = uint64(0x3) << boundShift

	ageShift = boundShift + 2 // 42
	ageMask  = uint64(0xF) << ageShift
)

func pack(move Move, depth int8, value Value, bound BoundType, age uint8) uint64 {
	return uint64(move.MoveOf())&moveMask |
		uint64(uint16(value))<<valueShift&valueMask |
		uint64(uint8(depth))<<depthShift&depthMask |
		uint64(bound)<<boundShift&boundMask |
		uint64(age)<<ageShift&ageMask
}

func unpack(data uint64) (move Move, depth int8, value Value, bound BoundType, age uint8) {
	move = Move((data & moveMask) >> moveShift)
	value = Value(int16((data & valueMask) >> valueShift))
	depth = int8((data & depthMask) >> depthShift)
	bound = BoundType((data & boundMask) >> boundShift)
	age = uint8((data & ageMask) >> ageShift)
	return
}

// load returns the entry's content if its guard word is consistent with
// the requested key, matching the searchapi.Storage.Probe contract.
func (e *entry) load(key Key) (searchapi.StorageEntry, bool) {
	data := e.data.Load()
	guard := e.keyXor.Load()
	if Key(guard^data) != key {
		return searchapi.StorageEntry{}, false
	}
	move, depth, value, bound, _ := unpack(data)
	return searchapi.StorageEntry{Move: move, Depth: depth, Value: value, Bound: bound}, true
}

func (e *entry) store(key Key, move Move, depth int8, value Value, bound BoundType, age uint8) {
	data := pack(move, depth, value, bound, age)
	// Publish data before the guard: a concurrent reader only accepts a
	// torn pairing if it happens to XOR back to the exact key it asked
	// for, which is astronomically unlikely.
	e.data.Store(data)
	e.keyXor.Store(uint64(key) ^ data)
}

func (e *entry) occupied() bool {
	return e.keyXor.Load() != 0 || e.data.Load() != 0
}

func (e *entry) rawDepth() int8 {
	_, depth, _, _, _ := unpack(e.data.Load())
	return depth
}

func (e *entry) rawAge() uint8 {
	_, _, _, _, age := unpack(e.data.Load())
	return age
}

func (e *entry) bumpAge() {
	for {
		old := e.data.Load()
		move, depth, value, bound, age := unpack(old)
		if age >= 0xF {
			return
		}
		updated := pack(move, depth, value, bound, age+1)
		if e.data.CompareAndSwap(old, updated) {
			// keyXor must track the new data word to stay self-consistent.
			guard := e.keyXor.Load()
			key := guard ^ old
			e.keyXor.Store(key ^ updated)
			return
		}
	}
}
