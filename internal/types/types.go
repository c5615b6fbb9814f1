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

// Package types holds the small, dependency-free value types shared by
// every search package: squares, colors, piece types, the encoded Move,
// and the Value score type with its mate-distance handling.
//
// Board representation and move generation are external collaborators
// (see internal/searchapi) - this package only carries the data shapes
// the search core and its narrow interfaces need to talk about moves
// and scores.
package types

import "fmt"

// Color identifies the side to move.
type Color uint8

// Colors.
const (
	White Color = 0
	Black Color = 1
)

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid reports whether c is White or Black.
func (c Color) IsValid() bool {
	return c <= Black
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Square is a board square, SqA1..SqH8, or SqNone.
type Square uint8

// SqA1 is the first board square; SqNone is the sentinel "no square" value.
const (
	SqA1   Square = 0
	SqNone Square = 64
)

// IsValid reports whether s is a real board square.
func (s Square) IsValid() bool {
	return s < SqNone
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	file := byte('a' + s%8)
	rank := byte('1' + s/8)
	return string([]byte{file, rank})
}

// PieceType enumerates the promotion targets a Move can encode.
// Pawn/King are included only so material-free code (history, logging)
// can talk about "no piece type" without a second sentinel.
type PieceType uint8

// Piece types. Only Knight..Queen are valid promotion targets.
const (
	PieceTypeNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// IsValid reports whether pt is a legal promotion target.
func (pt PieceType) IsValid() bool {
	return pt >= Knight && pt <= Queen
}

func (pt PieceType) Char() string {
	switch pt {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	default:
		return ""
	}
}

// Value is the score of a position or search result, side-to-move relative.
type Value int32

// Score bounds. Mirrors the teacher's types.Value constants
// (internal/types/score.go in the teacher, root-level types/value.go):
// a wide integer range with a reserved band at the top for mate scores
// counted down by ply, and a dedicated "not available" sentinel outside
// the valid range entirely.
const (
	ValueZero               Value = 0
	ValueDraw               Value = 0
	ValueInf                Value = 15_000
	ValueNA                 Value = -ValueInf - 1
	ValueMax                Value = 10_000
	ValueMin                Value = -ValueMax
	ValueCheckMate          Value = ValueMax
	MaxSearchPly                  = 128
	ValueCheckMateThreshold Value = ValueCheckMate - MaxSearchPly - 1
	// KnownWin is the threshold above which a score is treated as a
	// proven win for exit-on-mate and null-move-mate handling (spec
	// §4.5, §4.6, §9).
	KnownWin Value = ValueCheckMateThreshold
)

// IsValid reports whether v is within the representable score range.
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckMateValue reports whether v encodes a forced mate.
func (v Value) IsCheckMateValue() bool {
	a := v
	if a < 0 {
		a = -a
	}
	return a > ValueCheckMateThreshold && a <= ValueCheckMate
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (v Value) String() string {
	switch {
	case v == ValueNA:
		return "N/A"
	case v.IsCheckMateValue():
		sign := ""
		if v < 0 {
			sign = "-"
		}
		pliesToMate := int(ValueCheckMate) - abs(int(v))
		movesToMate := (pliesToMate + 1) / 2
		return fmt.Sprintf("mate %s%d", sign, movesToMate)
	default:
		return fmt.Sprintf("cp %d", int(v))
	}
}

// BoundType is the kind of bound a transposition-table entry represents.
type BoundType uint8

// Bound kinds, as defined in spec.md §3 (C2 data model).
const (
	BoundNone  BoundType = 0
	BoundExact BoundType = 1
	BoundAlpha BoundType = 2 // upper bound - true score <= stored value
	BoundBeta  BoundType = 3 // lower bound - true score >= stored value
)

func (b BoundType) String() string {
	switch b {
	case BoundExact:
		return "EXACT"
	case BoundAlpha:
		return "ALPHA"
	case BoundBeta:
		return "BETA"
	default:
		return "NONE"
	}
}

// Key is a Zobrist hash key for a chess position.
type Key uint64
