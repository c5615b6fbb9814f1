package search

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ironpawn/searchcore/internal/searchapi"
	. "github.com/ironpawn/searchcore/internal/types"
)

// This file provides a minimal, legality-correct chess board and a
// matching staged move selector so the search core's tests can exercise
// real positions (mate/stalemate/repetition detection, check extension,
// pruning gates) without depending on a production board implementation
// - board/movegen are external collaborators per spec.md §1/§6, so the
// search core's own tests must supply a fake satisfying searchapi.BoardState
// and searchapi.MoveSelector, same as any other consumer of this module
// would.

type fakePiece struct {
	pt      PieceType
	color   Color
	present bool
}

type fakeUndo struct {
	from, to  Square
	moved     fakePiece
	captured  fakePiece
	promoted  bool
	fifty     int
	histLen   int
	isNull    bool
}

// testBoard is a pseudo-legal-then-validated chess board covering every
// piece type except castling and en passant - neither is exercised by
// any position in spec.md §8's concrete scenarios.
type testBoard struct {
	sq        [64]fakePiece
	stm       Color
	fifty     int
	ply       int
	history   []Key
	undoStack []fakeUndo
}

var zobristPieces [64][2][7]uint64
var zobristSTM uint64

func init() {
	r := rand.New(rand.NewSource(0xC0FFEE))
	for s := 0; s < 64; s++ {
		for c := 0; c < 2; c++ {
			for pt := 0; pt < 7; pt++ {
				zobristPieces[s][c][pt] = r.Uint64()
			}
		}
	}
	zobristSTM = r.Uint64()
}

func sq(file, rank int) Square { return Square(rank*8 + file) }
func inBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func pieceFromChar(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	}
	return PieceTypeNone
}

func charFromPiece(pt PieceType, color Color) byte {
	var c byte
	switch pt {
	case Pawn:
		c = 'p'
	case Knight:
		c = 'n'
	case Bishop:
		c = 'b'
	case Rook:
		c = 'r'
	case Queen:
		c = 'q'
	case King:
		c = 'k'
	default:
		return '?'
	}
	if color == White {
		return c - 32
	}
	return c
}

// newTestBoard builds a board from a FEN string. Castling rights and the
// en-passant target field are parsed but ignored - none of spec.md §8's
// concrete scenarios need them.
func newTestBoard(fen string) *testBoard {
	b := &testBoard{stm: White}
	fields := strings.Fields(fen)
	placement := fields[0]
	rank, file := 7, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			color := White
			if c >= 'a' && c <= 'z' {
				color = Black
			}
			b.sq[sq(file, rank)] = fakePiece{pt: pieceFromChar(c), color: color, present: true}
			file++
		}
	}
	if len(fields) > 1 && fields[1] == "b" {
		b.stm = Black
	}
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.fifty = n
		}
	}
	b.history = []Key{b.ZobristKey()}
	return b
}

func (b *testBoard) ZobristKey() Key {
	var k uint64
	for s := 0; s < 64; s++ {
		p := b.sq[s]
		if p.present {
			k ^= zobristPieces[s][p.color][p.pt]
		}
	}
	if b.stm == Black {
		k ^= zobristSTM
	}
	return Key(k)
}

func (b *testBoard) SideToMove() Color       { return b.stm }
func (b *testBoard) Ply() int                { return b.ply }
func (b *testBoard) SPly() int               { return len(b.undoStack) }
func (b *testBoard) FiftyMoveCounter() int   { return b.fifty }

func (b *testBoard) PieceCount(c Color) int {
	n := 0
	for _, p := range b.sq {
		if p.present && p.color == c {
			n++
		}
	}
	return n
}

func (b *testBoard) HasNonPawnMaterial(c Color) bool {
	for _, p := range b.sq {
		if p.present && p.color == c && p.pt != Pawn && p.pt != King {
			return true
		}
	}
	return false
}

func (b *testBoard) kingSquare(c Color) Square {
	for s := 0; s < 64; s++ {
		p := b.sq[s]
		if p.present && p.color == c && p.pt == King {
			return Square(s)
		}
	}
	return SqNone
}

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func (b *testBoard) isAttacked(target Square, by Color) bool {
	f0, r0 := int(target)%8, int(target)/8

	pawnRankDir := 1
	if by == Black {
		pawnRankDir = -1
	}
	for _, df := range []int{-1, 1} {
		f, r := f0+df, r0-pawnRankDir
		if inBoard(f, r) {
			p := b.sq[sq(f, r)]
			if p.present && p.color == by && p.pt == Pawn {
				return true
			}
		}
	}
	for _, d := range knightDeltas {
		f, r := f0+d[0], r0+d[1]
		if inBoard(f, r) {
			p := b.sq[sq(f, r)]
			if p.present && p.color == by && p.pt == Knight {
				return true
			}
		}
	}
	for _, d := range kingDeltas {
		f, r := f0+d[0], r0+d[1]
		if inBoard(f, r) {
			p := b.sq[sq(f, r)]
			if p.present && p.color == by && p.pt == King {
				return true
			}
		}
	}
	for _, d := range rookDirs {
		f, r := f0+d[0], r0+d[1]
		for inBoard(f, r) {
			p := b.sq[sq(f, r)]
			if p.present {
				if p.color == by && (p.pt == Rook || p.pt == Queen) {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	for _, d := range bishopDirs {
		f, r := f0+d[0], r0+d[1]
		for inBoard(f, r) {
			p := b.sq[sq(f, r)]
			if p.present {
				if p.color == by && (p.pt == Bishop || p.pt == Queen) {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

func (b *testBoard) InCheck(c Color) bool {
	ks := b.kingSquare(c)
	if ks == SqNone {
		return false
	}
	return b.isAttacked(ks, c.Flip())
}

// pseudoLegalMoves generates every pseudo-legal move for color - legality
// (own king left in check) is validated later by MakeMove, exactly as
// spec.md §3 requires of a real board.
func (b *testBoard) pseudoLegalMoves(color Color) []Move {
	var moves []Move
	pawnDir := 1
	startRank, promoRank := 1, 7
	if color == Black {
		pawnDir = -1
		startRank, promoRank = 6, 0
	}
	addMove := func(from, to Square, mt MoveType, promo PieceType) {
		moves = append(moves, NewMove(from, to, mt, promo))
	}
	for s := 0; s < 64; s++ {
		p := b.sq[s]
		if !p.present || p.color != color {
			continue
		}
		from := Square(s)
		f0, r0 := s%8, s/8
		switch p.pt {
		case Pawn:
			r1 := r0 + pawnDir
			if inBoard(f0, r1) && !b.sq[sq(f0, r1)].present {
				if r1 == promoRank {
					addMove(from, sq(f0, r1), Promotion, Queen)
				} else {
					addMove(from, sq(f0, r1), Normal, PieceTypeNone)
					if r0 == startRank {
						r2 := r0 + 2*pawnDir
						if !b.sq[sq(f0, r2)].present {
							addMove(from, sq(f0, r2), Normal, PieceTypeNone)
						}
					}
				}
			}
			for _, df := range []int{-1, 1} {
				f1 := f0 + df
				if !inBoard(f1, r1) {
					continue
				}
				target := b.sq[sq(f1, r1)]
				if target.present && target.color != color {
					if r1 == promoRank {
						addMove(from, sq(f1, r1), PromoCapture, Queen)
					} else {
						addMove(from, sq(f1, r1), Capture, PieceTypeNone)
					}
				}
			}
		case Knight:
			for _, d := range knightDeltas {
				f, r := f0+d[0], r0+d[1]
				if !inBoard(f, r) {
					continue
				}
				target := b.sq[sq(f, r)]
				if !target.present {
					addMove(from, sq(f, r), Normal, PieceTypeNone)
				} else if target.color != color {
					addMove(from, sq(f, r), Capture, PieceTypeNone)
				}
			}
		case King:
			for _, d := range kingDeltas {
				f, r := f0+d[0], r0+d[1]
				if !inBoard(f, r) {
					continue
				}
				target := b.sq[sq(f, r)]
				if !target.present {
					addMove(from, sq(f, r), Normal, PieceTypeNone)
				} else if target.color != color {
					addMove(from, sq(f, r), Capture, PieceTypeNone)
				}
			}
		case Bishop, Rook, Queen:
			var dirs [][2]int
			if p.pt == Bishop || p.pt == Queen {
				dirs = append(dirs, bishopDirs[:]...)
			}
			if p.pt == Rook || p.pt == Queen {
				dirs = append(dirs, rookDirs[:]...)
			}
			for _, d := range dirs {
				f, r := f0+d[0], r0+d[1]
				for inBoard(f, r) {
					target := b.sq[sq(f, r)]
					if !target.present {
						addMove(from, sq(f, r), Normal, PieceTypeNone)
					} else {
						if target.color != color {
							addMove(from, sq(f, r), Capture, PieceTypeNone)
						}
						break
					}
					f += d[0]
					r += d[1]
				}
			}
		}
	}
	return moves
}

// MakeMove applies m and validates legality (own king must not be left
// in check); an illegal move is fully unwound before returning false, so
// callers never observe a partially-applied move.
func (b *testBoard) MakeMove(m Move) bool {
	from, to := m.From(), m.To()
	moving := b.sq[from]
	captured := b.sq[to]

	u := fakeUndo{from: from, to: to, moved: moving, captured: captured, fifty: b.fifty, histLen: len(b.history)}

	b.sq[from] = fakePiece{}
	if m.IsPromotion() {
		b.sq[to] = fakePiece{pt: m.PromotionType(), color: moving.color, present: true}
		u.promoted = true
	} else {
		b.sq[to] = moving
	}

	mover := moving.color
	if b.isAttacked(b.kingSquare(mover), mover.Flip()) {
		// illegal: unwind immediately.
		b.sq[from] = moving
		b.sq[to] = captured
		return false
	}

	if moving.pt == Pawn || m.IsCapture() {
		b.fifty = 0
	} else {
		b.fifty++
	}
	b.stm = b.stm.Flip()
	b.ply++
	b.history = append(b.history, b.ZobristKey())
	b.undoStack = append(b.undoStack, u)
	return true
}

func (b *testBoard) UnmakeMove() {
	n := len(b.undoStack)
	u := b.undoStack[n-1]
	b.undoStack = b.undoStack[:n-1]
	b.history = b.history[:u.histLen]

	b.sq[u.from] = u.moved
	b.sq[u.to] = u.captured
	b.fifty = u.fifty
	b.stm = b.stm.Flip()
	b.ply--
}

func (b *testBoard) MakeNullMove() {
	u := fakeUndo{isNull: true, fifty: b.fifty, histLen: len(b.history)}
	b.undoStack = append(b.undoStack, u)
	b.stm = b.stm.Flip()
	b.ply++
}

func (b *testBoard) UnmakeNullMove() {
	n := len(b.undoStack)
	b.undoStack = b.undoStack[:n-1]
	b.stm = b.stm.Flip()
	b.ply--
}

func (b *testBoard) IsRepetition(atLeast int) bool {
	if len(b.history) == 0 {
		return false
	}
	key := b.history[len(b.history)-1]
	count := 0
	for i := 0; i < len(b.history)-1; i++ {
		if b.history[i] == key {
			count++
		}
	}
	return count >= atLeast
}

func (b *testBoard) IsPawnPush(m Move) bool {
	p := b.sq[m.From()]
	if !p.present || p.pt != Pawn {
		return false
	}
	rank := int(m.To()) / 8
	if p.color == White {
		return rank >= 5
	}
	return rank <= 2
}

func (b *testBoard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.sq[sq(file, rank)]
			if !p.present {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p.pt, p.color))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// testSelector is a minimal staged move selector satisfying
// searchapi.MoveSelector: it yields the TT move once, then every other
// pseudo-legal move in generation order. Every capture is reported as a
// "good capture" - the fake never classifies a capture as bad, so the
// quiescence bad-capture skip (spec.md §4.4 step 8) never discards a
// move in these tests.
type testSelector struct {
	moves []Move
	idx   int
	skip  Move
	tt    Move

	qMoves []Move
	qIdx   int
}

func (s *testSelector) InitNode(b searchapi.BoardState, quiescence, root, inCheck bool) {
	tb := b.(*testBoard)
	all := tb.pseudoLegalMoves(tb.stm)
	if quiescence {
		s.qIdx = 0
		if inCheck {
			s.qMoves = all
			return
		}
		s.qMoves = s.qMoves[:0]
		for _, m := range all {
			if m.IsCapture() {
				s.qMoves = append(s.qMoves, m)
			}
		}
		return
	}
	s.moves = all
	s.idx = 0
	s.skip = MoveNone
}

func (s *testSelector) SetTTMove(m Move) { s.tt = m.MoveOf() }

func (s *testSelector) NextMove(b searchapi.BoardState) (Move, bool) {
	if s.tt != MoveNone {
		m := s.tt
		s.tt = MoveNone
		s.skip = m
		return m, true
	}
	for s.idx < len(s.moves) {
		m := s.moves[s.idx]
		s.idx++
		if s.skip != MoveNone && m.MoveOf() == s.skip {
			continue
		}
		return m, true
	}
	return MoveNone, false
}

func (s *testSelector) NextQMove(b searchapi.BoardState) (Move, bool) {
	if s.qIdx >= len(s.qMoves) {
		return MoveNone, false
	}
	m := s.qMoves[s.qIdx]
	s.qIdx++
	return m, true
}

func (s *testSelector) UpdateRootMoveScores(scores map[Move]Value) {}

func (s *testSelector) CurrentPhase() searchapi.MovePhase { return searchapi.PhaseGoodCaptures }

// testEvaluator is a flat material counter, side-to-move relative.
type testEvaluator struct{}

func pieceValue(pt PieceType) int {
	switch pt {
	case Pawn:
		return 100
	case Knight:
		return 320
	case Bishop:
		return 330
	case Rook:
		return 500
	case Queen:
		return 900
	default:
		return 0
	}
}

func (testEvaluator) Evaluate(b searchapi.BoardState) Value {
	tb := b.(*testBoard)
	score := 0
	for _, p := range tb.sq {
		if !p.present {
			continue
		}
		v := pieceValue(p.pt)
		if p.color == White {
			score += v
		} else {
			score -= v
		}
	}
	if tb.stm == Black {
		score = -score
	}
	return Value(score)
}

func (testEvaluator) IsMaterialDraw(b searchapi.BoardState) bool { return false }

// testSEE treats every capture as non-losing, so SEE-gated pruning never
// discards a move in these tests - the fake's job is to exercise the
// search's control flow, not to model exchange values precisely.
type testSEE struct{}

func (testSEE) SeeGE(b searchapi.BoardState, m Move, threshold Value) bool     { return true }
func (testSEE) SeePostGE(b searchapi.BoardState, m Move, threshold Value) bool { return true }

// testTC is an always-available time controller: CheckTime never expires,
// so the worker's only exit condition in tests is the SD depth ceiling.
// onNewIteration lets a test hook the boundary between iterations, e.g.
// to shift the evaluator mid-search.
type testTC struct {
	expired        bool
	onNewIteration func(depth int)

	confTimeLeft  time.Duration
	confInc       time.Duration
	confMovesToGo int
}

func (tc *testTC) CheckTime() bool { return !tc.expired }

func (tc *testTC) NewIteration(depth int) bool {
	if tc.onNewIteration != nil {
		tc.onNewIteration(depth)
	}
	return true
}

func (tc *testTC) Configure(timeLeft, inc time.Duration, movesToGo int) {
	tc.confTimeLeft = timeLeft
	tc.confInc = inc
	tc.confMovesToGo = movesToGo
}

func (tc *testTC) ElapsedTime() time.Duration { return 0 }

// scriptedEvaluator shifts the flat material evaluation by a
// White-perspective offset the test can change between iterations,
// forcing an aspiration-window failure on demand.
type scriptedEvaluator struct {
	offset *Value
}

func (e scriptedEvaluator) Evaluate(b searchapi.BoardState) Value {
	base := testEvaluator{}.Evaluate(b)
	off := *e.offset
	if b.SideToMove() == Black {
		off = -off
	}
	return base + off
}

func (e scriptedEvaluator) IsMaterialDraw(b searchapi.BoardState) bool { return false }
