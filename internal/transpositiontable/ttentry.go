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

package transpositiontable

import (
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

// TtEntry is the data structure for each slot in a transposition table bucket.
// The move is kept as the full 32-bit encoding - our Move has promotion type
// bits up to bit 21 and would lose information if truncated to 16 bits.
type TtEntry struct {
	key   position.Key // 64-bit Zobrist key
	move  Move         // best/refutation move found for this position
	eval  int16        // static evaluation value
	value int16        // search value (bound or exact)
	vmeta uint16
	// vmeta bit layout (lowest to highest bit):
	//   age    3-bit  1 when stored, decreased on a probe hit (not below 0),
	//                 increased by AgeEntries, not aged past 7
	//   vtype  2-bit  ValueType: None, Exact, Alpha (upper bound), Beta (lower bound)
	//   depth  7-bit  0-127
	//   isMax  1-bit  side-to-move framing the stored score was computed under
}

const (
	// TtEntrySize is the size in bytes of each TtEntry slot.
	TtEntrySize = 24

	ageMask    = uint16(0b0000_0000_0000_0111)
	vtypeMask  = uint16(0b0000_0000_0001_1000)
	vtypeShift = uint16(3)
	depthMask  = uint16(0b0000_1111_1110_0000)
	depthShift = uint16(5)
	isMaxMask  = uint16(0b0001_0000_0000_0000)
	isMaxShift = uint16(12)
)

func (e *TtEntry) decreaseAge() {
	if e.Age() > 0 {
		e.vmeta--
	}
}

func (e *TtEntry) increaseAge() {
	if e.Age() < 7 {
		e.vmeta++
	}
}

// IsEmpty reports whether this slot has never been written.
func (e *TtEntry) IsEmpty() bool {
	return e.key == 0
}

func (e *TtEntry) Key() position.Key {
	return e.key
}

func (e *TtEntry) Move() Move {
	return e.move
}

func (e *TtEntry) Value() Value {
	return Value(e.value)
}

func (e *TtEntry) Eval() Value {
	return Value(e.eval)
}

func (e *TtEntry) Depth() int8 {
	return int8((e.vmeta & depthMask) >> depthShift)
}

func (e *TtEntry) Age() int8 {
	return int8(e.vmeta & ageMask)
}

func (e *TtEntry) Vtype() ValueType {
	return ValueType((e.vmeta & vtypeMask) >> vtypeShift)
}

// IsMax reports which side-to-move framing the stored score was computed
// under, so a probe never reuses a maximizer score in a minimizer's sense.
func (e *TtEntry) IsMax() bool {
	return (e.vmeta & isMaxMask) != 0
}

func packVmeta(depth int8, vtype ValueType, isMax bool) uint16 {
	v := uint16(depth)<<depthShift + uint16(vtype)<<vtypeShift + uint16(1)
	if isMax {
		v |= isMaxMask
	}
	return v
}
