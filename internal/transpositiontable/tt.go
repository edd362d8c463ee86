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

// Package transpositiontable implements a bucketed transposition table
// (cache) for the search. Each Zobrist key hashes to a bucket of BucketSize
// slots which are scanned linearly on both store and probe, the same layout
// as the bucketed cache in the engine this package is ported from. The
// TtTable type is not thread safe and needs to be synchronized externally
// if used from multiple threads. This is especially relevant for Resize and
// Clear, which must not be called concurrently with a running search.
package transpositiontable

import (
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
	"github.com/dkoch/gochess/internal/util"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB is the largest table size Resize will honor.
	MaxSizeInMB = 65_536

	// BucketSize is the number of slots scanned linearly within a single
	// hash bucket, matching the 64-slot bucket of the cache this table is
	// ported from.
	BucketSize = 64
)

// TtTable is a bucketed transposition table: the key's low bits select a
// bucket of BucketSize consecutive TtEntry slots, which are then scanned
// linearly to find a matching key, an empty slot, or a depth-preferred
// overwrite candidate.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	numberOfBuckets    uint64
	bucketKeyMask      uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	Stats              TtStats
}

// TtStats holds statistical counters on tt usage. A struct field rather
// than a package level counter so that multiple TtTable instances (as used
// in tests) never share state.
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// HitsAndMisses returns the running probe hit and miss counts, for callers
// outside this package that want to report aggregate TT effectiveness
// without reaching into TtStats' unexported fields.
func (tt *TtTable) HitsAndMisses() (hits, misses uint64) {
	return tt.Stats.numberOfHits, tt.Stats.numberOfMisses
}

// NewTtTable creates a new TtTable sized to at most sizeInMByte of memory.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table to the given number of megabytes. All
// entries are cleared. Not safe to call concurrently with a running search.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB

	// number of buckets is the largest power of 2 that fits the requested
	// size, each bucket holding BucketSize slots of TtEntrySize bytes
	bytesPerBucket := uint64(BucketSize) * TtEntrySize
	if tt.sizeInByte < bytesPerBucket {
		tt.numberOfBuckets = 0
	} else {
		tt.numberOfBuckets = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/bytesPerBucket))))
	}
	tt.bucketKeyMask = tt.numberOfBuckets - 1
	tt.maxNumberOfEntries = tt.numberOfBuckets * uint64(BucketSize)

	if tt.sizeInByte == 0 {
		tt.numberOfBuckets = 0
		tt.maxNumberOfEntries = 0
	}

	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}

	tt.log.Info(out.Sprintf("TT Size %d MByte, %d buckets x %d slots, capacity %d entries (size=%dByte) (requested were %d MByte)",
		tt.sizeInByte/MB, tt.numberOfBuckets, BucketSize, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// bucketBase returns the index of the first slot of the bucket the given
// key hashes to.
func (tt *TtTable) bucketBase(key position.Key) uint64 {
	return (uint64(key) & tt.bucketKeyMask) * uint64(BucketSize)
}

// GetEntry returns a pointer to the tt entry matching key within its
// bucket, or nil if no slot in the bucket currently holds that key. Does
// not change statistics.
func (tt *TtTable) GetEntry(key position.Key) *TtEntry {
	return tt.find(key)
}

func (tt *TtTable) find(key position.Key) *TtEntry {
	if tt.numberOfBuckets == 0 {
		return nil
	}
	base := tt.bucketBase(key)
	for i := uint64(0); i < BucketSize; i++ {
		e := &tt.data[base+i]
		if e.key == key {
			return e
		}
	}
	return nil
}

// Probe returns a pointer to the tt entry matching key, or nil. Decreases
// the entry's age by one on a hit.
func (tt *TtTable) Probe(key position.Key) *TtEntry {
	tt.Stats.numberOfProbes++
	e := tt.find(key)
	if e == nil {
		tt.Stats.numberOfMisses++
		return nil
	}
	e.decreaseAge()
	tt.Stats.numberOfHits++
	return e
}

// Put stores a search result for key into its bucket. It scans the bucket
// linearly: a slot already holding this key is updated in place; the first
// empty slot is used if no matching key is found; otherwise the bucket is
// full, the collision counter is bumped and a slot is chosen by depth
// preference, and if the bucket holds only unrelated entries at least as
// valuable, the key's hash modulo BucketSize picks a fallback slot to
// evict - the same fallback the original bucketed cache uses when every
// scanned slot is occupied.
func (tt *TtTable) Put(key position.Key, move Move, depth int8, value Value, valueType ValueType, eval Value, isMax bool) {
	if tt.numberOfBuckets == 0 {
		return
	}
	tt.Stats.numberOfPuts++

	pkey := key
	base := tt.bucketBase(pkey)

	var emptySlot *TtEntry
	for i := uint64(0); i < BucketSize; i++ {
		e := &tt.data[base+i]
		if e.key == pkey {
			tt.Stats.numberOfUpdates++
			if move != MoveNone {
				e.move = move
			}
			if eval != ValueNA {
				e.eval = int16(eval)
			}
			if value != ValueNA && depth > e.Depth() {
				e.value = int16(value)
				e.vmeta = packVmeta(depth, valueType, isMax)
			}
			return
		}
		if emptySlot == nil && e.IsEmpty() {
			emptySlot = e
		}
	}

	if emptySlot != nil {
		tt.numberOfEntries++
		emptySlot.key = pkey
		emptySlot.move = move
		emptySlot.eval = int16(eval)
		emptySlot.value = int16(value)
		emptySlot.vmeta = packVmeta(depth, valueType, isMax)
		return
	}

	tt.Stats.numberOfCollisions++

	// bucket is full - try a depth-preferred or aged overwrite first
	for i := uint64(0); i < BucketSize; i++ {
		e := &tt.data[base+i]
		if depth > e.Depth() || (depth == e.Depth() && e.Age() > 1) {
			tt.Stats.numberOfOverwrites++
			e.key = pkey
			e.move = move
			e.eval = int16(eval)
			e.value = int16(value)
			e.vmeta = packVmeta(depth, valueType, isMax)
			return
		}
	}

	// every slot is occupied by an entry at least as valuable - fall back
	// to the hash-mod-BucketSize slot used by the bucketed cache this table
	// is ported from.
	fallback := &tt.data[base+(uint64(pkey)%uint64(BucketSize))]
	fallback.key = pkey
	fallback.move = move
	fallback.eval = int16(eval)
	fallback.value = int16(value)
	fallback.vmeta = packVmeta(depth, valueType, isMax)
}

// Clear clears all entries of the tt. Not safe to call concurrently with a
// running search.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill, as per UCI.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB %d buckets x %d slots of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.numberOfBuckets, BucketSize, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non-empty entries in the tt.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// AgeEntries ages each non-empty entry in the tt, spreading the work across
// a fixed pool of goroutines so a resize-sized table ages quickly between
// searches.
func (tt *TtTable) AgeEntries() {
	startTime := time.Now()
	if tt.numberOfEntries > 0 {
		numberOfGoroutines := uint64(32)
		var wg sync.WaitGroup
		wg.Add(int(numberOfGoroutines))
		slice := tt.maxNumberOfEntries / numberOfGoroutines
		for i := uint64(0); i < numberOfGoroutines; i++ {
			go func(i uint64) {
				defer wg.Done()
				start := i * slice
				end := start + slice
				if i == numberOfGoroutines-1 {
					end = tt.maxNumberOfEntries
				}
				for n := start; n < end; n++ {
					if !tt.data[n].IsEmpty() {
						tt.data[n].increaseAge()
					}
				}
			}(i)
		}
		wg.Wait()
	}
	elapsed := time.Since(startTime)
	tt.log.Debug(out.Sprintf("Aged %d entries of %d in %d ms\n", tt.numberOfEntries, len(tt.data), elapsed.Milliseconds()))
}
