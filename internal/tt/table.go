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

// Package tt implements the shared hash_tt primitive (§6) every search
// worker probes and stores into concurrently, and the transposition-table
// adapter (C2) built on top of it that applies ply-adjusted mate scoring
// and the classic EXACT/ALPHA/BETA cut-window decision.
//
// Table is a direct descendant of the teacher's non-thread-safe
// internal/transpositiontable (TtTable/TtEntry): same power-of-two
// addressing and depth/age replacement policy, but each slot is now a
// pair of atomic words validated by a key-XOR guard (see entry.go) so
// lazy-SMP workers can probe and store without a lock (§5, §9).
package tt

import (
	"context"
	"math"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ironpawn/searchcore/internal/logging"
	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB caps a single table's memory footprint, mirroring the
// teacher's transpositiontable.MaxSizeInMB.
const MaxSizeInMB = 65_536

const mb = 1024 * 1024

// entrySize is the memory cost of one slot: two atomic.Uint64 words.
const entrySize = uint64(unsafe.Sizeof(entry{}))

// Table is the concrete, concurrency-safe implementation of
// searchapi.Storage. The zero value is not usable - construct with
// NewTable.
type Table struct {
	data               []entry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    atomic.Uint64
	age                atomic.Uint64

	probes atomic.Uint64
	hits   atomic.Uint64
}

// NewTable creates a Table sized to the largest power-of-two entry count
// that fits within sizeInMByte.
func NewTable(sizeInMByte int) *Table {
	t := &Table{}
	t.Resize(sizeInMByte)
	return t
}

// Resize reallocates the table, discarding all entries. Must not be
// called concurrently with Probe/Store (matches the teacher's own
// restriction on Resize/Clear).
func (t *Table) Resize(sizeInMByte int) {
	log := logging.GetLog()
	if sizeInMByte > MaxSizeInMB {
		log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	t.sizeInByte = uint64(sizeInMByte) * mb
	if t.sizeInByte == 0 {
		t.maxNumberOfEntries = 0
	} else {
		t.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(t.sizeInByte/entrySize))))
	}
	t.hashKeyMask = t.maxNumberOfEntries - 1
	t.sizeInByte = t.maxNumberOfEntries * entrySize

	t.data = make([]entry, t.maxNumberOfEntries)
	t.numberOfEntries.Store(0)
	t.age.Store(0)
	t.probes.Store(0)
	t.hits.Store(0)

	log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte)",
		t.sizeInByte/mb, t.maxNumberOfEntries, entrySize))
}

func (t *Table) index(key Key) uint64 {
	return uint64(key) & t.hashKeyMask
}

// Probe implements searchapi.Storage.
func (t *Table) Probe(key Key) (searchapi.StorageEntry, bool) {
	if t.maxNumberOfEntries == 0 {
		return searchapi.StorageEntry{}, false
	}
	t.probes.Add(1)
	se, ok := t.data[t.index(key)].load(key)
	if ok {
		t.hits.Add(1)
	}
	return se, ok
}

// Store implements searchapi.Storage. Replacement policy mirrors the
// teacher's Put: an empty slot is always taken; a colliding slot is
// overwritten only when the new entry is at least as deep, or the old
// one has aged past one generation; a same-key slot is always refreshed.
func (t *Table) Store(key Key, se searchapi.StorageEntry) {
	if t.maxNumberOfEntries == 0 {
		return
	}
	slot := &t.data[t.index(key)]

	if !slot.occupied() {
		t.numberOfEntries.Add(1)
		slot.store(key, se.Move, se.Depth, se.Value, se.Bound, uint8(t.age.Load()))
		return
	}

	existing, sameKey := slot.load(key)
	if sameKey {
		move := se.Move
		if move == MoveNone {
			move = existing.Move
		}
		slot.store(key, move, se.Depth, se.Value, se.Bound, uint8(t.age.Load()))
		return
	}

	if se.Depth >= slot.rawDepth() || slot.rawAge() > 1 {
		slot.store(key, se.Move, se.Depth, se.Value, se.Bound, uint8(t.age.Load()))
	}
}

// Clear resets every entry. Must not be called concurrently with
// Probe/Store.
func (t *Table) Clear() {
	t.data = make([]entry, t.maxNumberOfEntries)
	t.numberOfEntries.Store(0)
	t.probes.Store(0)
	t.hits.Store(0)
}

// Hashfull implements searchapi.Storage, reporting fill ratio in permill.
func (t *Table) Hashfull() int {
	if t.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * t.numberOfEntries.Load()) / t.maxNumberOfEntries)
}

// Len returns the number of occupied slots.
func (t *Table) Len() uint64 {
	return t.numberOfEntries.Load()
}

// AgeEntries bumps every occupied entry's age by one generation, fanned
// out across an errgroup.Group instead of the teacher's raw
// sync.WaitGroup - the teacher's own AgeEntries is single-threaded-caller
// only, so generalizing it to errgroup costs nothing and gives a uniform
// cancellation-aware fan-out idiom across the module.
func (t *Table) AgeEntries() {
	start := time.Now()
	t.age.Add(1)
	if t.numberOfEntries.Load() == 0 {
		return
	}
	const goroutines = uint64(32)
	slice := t.maxNumberOfEntries / goroutines
	g, _ := errgroup.WithContext(context.Background())
	for i := uint64(0); i < goroutines; i++ {
		i := i
		g.Go(func() error {
			begin := i * slice
			end := begin + slice
			if i == goroutines-1 {
				end = t.maxNumberOfEntries
			}
			for n := begin; n < end; n++ {
				if t.data[n].occupied() {
					t.data[n].bumpAge()
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	logging.GetLog().Debug(out.Sprintf("Aged %d entries of %d in %d ms",
		t.numberOfEntries.Load(), len(t.data), time.Since(start).Milliseconds()))
}

// String reports a UCI-style summary, mirroring the teacher's TtTable.String.
func (t *Table) String() string {
	probes := t.probes.Load()
	hits := t.hits.Load()
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) probes %d hits %d (%d%%)",
		t.sizeInByte/mb, t.maxNumberOfEntries, entrySize, t.numberOfEntries.Load(), t.Hashfull()/10,
		probes, hits, (hits*100)/(1+probes))
}
