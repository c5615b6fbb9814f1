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

// Package tbcache decorates a searchapi.TablebaseProbe with a persistent
// on-disk cache, so repeated probes of the same endgame position across
// runs of the engine (analysis sessions, test suites) don't pay the
// tablebase file I/O cost twice. Probing itself stays entirely external
// to the search core (§6, §7.4) - this package only memoizes its result.
package tbcache

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"

	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// Cache wraps a backing searchapi.TablebaseProbe with a badger-backed
// result cache keyed by Zobrist key + piece count (pieceCount disambiguates
// the vanishingly rare Zobrist collision across positions with a different
// material count, which a tablebase verdict must never be shared across).
type Cache struct {
	db      *badger.DB
	backing searchapi.TablebaseProbe
}

// Open creates or opens a badger database at dir and wraps backing with
// a probe-result cache. Passing an empty dir opens badger in-memory only,
// useful for tests.
func Open(dir string, backing searchapi.TablebaseProbe) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, backing: backing}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// ProbeWDL implements searchapi.TablebaseProbe: consult the cache first,
// fall back to the backing probe and memoize its result on a hit.
func (c *Cache) ProbeWDL(b searchapi.BoardState) (searchapi.WDL, bool) {
	key := cacheKey(b)

	var cached searchapi.WDL
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 1 {
				cached = searchapi.WDL(val[0])
				found = true
			}
			return nil
		})
	})
	if err == nil && found {
		if cached == searchapi.WDLUnknown {
			return searchapi.WDLUnknown, false
		}
		return cached, true
	}

	wdl, ok := c.backing.ProbeWDL(b)
	if !ok {
		// Don't cache misses (missing tablebase files): whether a probe
		// succeeds can change as tablebase files are added at runtime.
		return searchapi.WDLUnknown, false
	}

	_ = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte{byte(wdl)})
	})
	return wdl, true
}

func cacheKey(b searchapi.BoardState) []byte {
	key := make([]byte, 10)
	binary.BigEndian.PutUint64(key[:8], uint64(b.ZobristKey()))
	key[8] = byte(b.PieceCount(White))
	key[9] = byte(b.PieceCount(Black))
	return key
}
