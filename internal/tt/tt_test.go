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
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

func TestEntrySize(t *testing.T) {
	e := entry{}
	assert.EqualValues(t, 16, unsafe.Sizeof(e))
}

func TestNewTableSizes(t *testing.T) {
	table := NewTable(2)
	assert.Equal(t, uint64(131_072), table.maxNumberOfEntries)
	assert.Equal(t, 131_072, cap(table.data))

	table = NewTable(64)
	assert.Equal(t, uint64(4_194_304), table.maxNumberOfEntries)

	// Non-power-of-two budgets round down to the next power of two.
	table = NewTable(100)
	assert.Equal(t, uint64(4_194_304), table.maxNumberOfEntries)
}

func TestPackUnpackRoundtrip(t *testing.T) {
	move := NewMove(12, 28, Normal, PieceTypeNone) // e2e4
	data := pack(move, 17, -3456, BoundBeta, 5)
	gotMove, gotDepth, gotValue, gotBound, gotAge := unpack(data)
	assert.Equal(t, move, gotMove)
	assert.EqualValues(t, 17, gotDepth)
	assert.EqualValues(t, -3456, gotValue)
	assert.Equal(t, BoundBeta, gotBound)
	assert.EqualValues(t, 5, gotAge)
}

func TestStoreAndProbe(t *testing.T) {
	table := NewTable(2)
	key := Key(0xDEADBEEFCAFE)
	move := NewMove(12, 28, Normal, PieceTypeNone)

	table.Store(key, searchapi.StorageEntry{Move: move, Depth: 6, Value: 123, Bound: BoundExact})

	se, ok := table.Probe(key)
	require.True(t, ok)
	assert.Equal(t, move, se.Move)
	assert.EqualValues(t, 6, se.Depth)
	assert.EqualValues(t, 123, se.Value)
	assert.Equal(t, BoundExact, se.Bound)

	_, ok = table.Probe(key + 1)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), table.Len())
}

func TestGuardRejectsForeignKey(t *testing.T) {
	table := NewTable(2)
	key := Key(42)
	table.Store(key, searchapi.StorageEntry{Move: MoveNone, Depth: 3, Value: 77, Bound: BoundAlpha})

	// A colliding key hashing to the same slot must not read the entry.
	collision := key + Key(table.maxNumberOfEntries)
	assert.Equal(t, table.index(key), table.index(collision))
	_, ok := table.Probe(collision)
	assert.False(t, ok)
}

func TestReplacementPolicy(t *testing.T) {
	table := NewTable(2)
	key := Key(7)
	collision := key + Key(table.maxNumberOfEntries)
	deepMove := NewMove(12, 28, Normal, PieceTypeNone)
	shallowMove := NewMove(11, 27, Normal, PieceTypeNone)

	table.Store(key, searchapi.StorageEntry{Move: deepMove, Depth: 9, Value: 10, Bound: BoundExact})

	// A shallower colliding entry of the same generation loses.
	table.Store(collision, searchapi.StorageEntry{Move: shallowMove, Depth: 2, Value: 20, Bound: BoundExact})
	se, ok := table.Probe(key)
	require.True(t, ok)
	assert.EqualValues(t, 9, se.Depth)

	// An equal-or-deeper colliding entry wins.
	table.Store(collision, searchapi.StorageEntry{Move: shallowMove, Depth: 9, Value: 20, Bound: BoundExact})
	_, ok = table.Probe(key)
	assert.False(t, ok)
	se, ok = table.Probe(collision)
	require.True(t, ok)
	assert.EqualValues(t, 20, se.Value)

	// A same-key store without a move keeps the previously stored move.
	table.Store(collision, searchapi.StorageEntry{Move: MoveNone, Depth: 10, Value: 30, Bound: BoundBeta})
	se, ok = table.Probe(collision)
	require.True(t, ok)
	assert.Equal(t, shallowMove, se.Move)
	assert.EqualValues(t, 30, se.Value)
}

func TestAgeEntriesKeepsGuardConsistent(t *testing.T) {
	table := NewTable(2)
	key := Key(99)
	table.Store(key, searchapi.StorageEntry{Move: MoveNone, Depth: 4, Value: 55, Bound: BoundExact})

	table.AgeEntries()

	// Aging rewrites the packed word; the XOR guard must track it so the
	// entry is still readable under its key.
	se, ok := table.Probe(key)
	require.True(t, ok)
	assert.EqualValues(t, 55, se.Value)
	assert.EqualValues(t, 1, table.data[table.index(key)].rawAge())
}

// Concurrent probes and stores must never return a value under the
// wrong key - a torn pairing fails the XOR guard and reads as a miss.
func TestConcurrentStoreProbe(t *testing.T) {
	table := NewTable(2)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10_000; i++ {
				key := Key(g*10_000 + i)
				table.Store(key, searchapi.StorageEntry{Depth: int8(i % 100), Value: Value(i % 1000), Bound: BoundExact})
				if se, ok := table.Probe(key); ok {
					assert.EqualValues(t, i%1000, se.Value)
				}
			}
		}()
	}
	wg.Wait()
}

func TestAdapterMateRebase(t *testing.T) {
	table := NewTable(2)
	a := NewAdapter(table)
	key := Key(0xABCD)
	move := NewMove(12, 28, Normal, PieceTypeNone)

	// Mate-in-(CheckMate-9995)=5 plies found at ply 3: stored relative to
	// root, read back relative to the probing ply.
	a.Store(key, move, 6, ValueCheckMate-5, BoundExact, 3)

	hit, hint, score := a.Lookup(key, 6, -ValueInf, ValueInf, 1)
	require.True(t, hit)
	assert.Equal(t, move, hint)
	assert.Equal(t, ValueCheckMate-3, score)

	hit, _, score = a.Lookup(key, 6, -ValueInf, ValueInf, 3)
	require.True(t, hit)
	assert.Equal(t, ValueCheckMate-5, score)

	// Mated scores rebase symmetrically.
	a.Store(key, move, 6, -ValueCheckMate+4, BoundExact, 2)
	hit, _, score = a.Lookup(key, 6, -ValueInf, ValueInf, 2)
	require.True(t, hit)
	assert.Equal(t, -ValueCheckMate+4, score)
}

func TestAdapterCutWindows(t *testing.T) {
	table := NewTable(2)
	a := NewAdapter(table)
	key := Key(0x1234)

	// A BETA (lower) bound cuts only when it proves score >= beta.
	a.Store(key, MoveNone, 8, 250, BoundBeta, 0)
	hit, _, _ := a.Lookup(key, 8, 0, 200, 0)
	assert.True(t, hit)
	hit, _, _ = a.Lookup(key, 8, 0, 300, 0)
	assert.False(t, hit)

	// An ALPHA (upper) bound cuts only when it proves score <= alpha.
	a.Store(key, MoveNone, 8, -50, BoundAlpha, 0)
	hit, _, _ = a.Lookup(key, 8, 0, 200, 0)
	assert.True(t, hit)
	hit, _, _ = a.Lookup(key, 8, -100, 200, 0)
	assert.False(t, hit)

	// Insufficient stored depth is never a cut but still yields the move hint.
	move := NewMove(12, 28, Normal, PieceTypeNone)
	a.Store(key, move, 4, 10, BoundExact, 0)
	hit, hint, _ := a.Lookup(key, 6, -ValueInf, ValueInf, 0)
	assert.False(t, hit)
	assert.Equal(t, move, hint)
}
