package chess

// Game results as reported in Board.Result. These strings are part of the
// snapshot surface and the harness output, so they stay stable.
const (
	ResultWhiteWins            = "White wins"
	ResultBlackWins            = "Black wins"
	ResultStalemate            = "Draw"
	ResultFiftyMoveRule        = "Draw — 50 move rule"
	ResultRepetition           = "Draw by repetition"
	ResultInsufficientMaterial = "Draw — insufficient material"
)

// CastlingRights tracks the four independent castle permissions. Each flag
// only ever goes from true to false.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

// Board is the complete game state: piece placement, side to move, castling
// rights, en-passant target, move clocks, result, capture lists and the
// position-hash history used for repetition detection.
//
// Coordinate system: row 0 = rank 1, col 0 = file a.
type Board struct {
	Squares        [8][8]*Piece
	Turn           Color
	Castling       CastlingRights
	EnPassant      *Square
	HalfmoveClock  int
	FullmoveNumber int
	GameOver       bool
	Result         string
	CapturedWhite  []PieceType // white pieces that were captured, in capture order
	CapturedBlack  []PieceType
	LastMove       *Move
	History        []uint64 // one hash appended per applied move
}

// NewBoard sets up the standard starting position and seeds History with its
// hash.
func NewBoard() *Board {
	b := &Board{
		Turn: White,
		Castling: CastlingRights{
			WhiteKingside:  true,
			WhiteQueenside: true,
			BlackKingside:  true,
			BlackQueenside: true,
		},
		FullmoveNumber: 1,
	}
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c := 0; c < 8; c++ {
		b.Squares[0][c] = &Piece{Type: backRank[c], Color: White}
		b.Squares[1][c] = &Piece{Type: Pawn, Color: White}
		b.Squares[6][c] = &Piece{Type: Pawn, Color: Black}
		b.Squares[7][c] = &Piece{Type: backRank[c], Color: Black}
	}
	b.History = append(b.History, b.Hash())
	return b
}

// EmptyBoard has no pieces, no castling rights and an empty history. Useful
// for setting up test positions.
func EmptyBoard() *Board {
	return &Board{
		Turn:           White,
		FullmoveNumber: 1,
	}
}

// Clone deep-copies everything the board owns. Piece values are immutable
// and shared between clones.
func (b *Board) Clone() *Board {
	clone := *b
	if b.EnPassant != nil {
		ep := *b.EnPassant
		clone.EnPassant = &ep
	}
	if b.LastMove != nil {
		lm := *b.LastMove
		clone.LastMove = &lm
	}
	clone.CapturedWhite = append([]PieceType(nil), b.CapturedWhite...)
	clone.CapturedBlack = append([]PieceType(nil), b.CapturedBlack...)
	clone.History = append([]uint64(nil), b.History...)
	return &clone
}

func inBounds(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func (b *Board) FindKing(color Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.Squares[r][c]; p != nil && p.Type == King && p.Color == color {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var straightDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// IsSquareAttackedBy reports whether any piece of the attacking color
// attacks the given square. Pure query, no board mutation.
func (b *Board) IsSquareAttackedBy(sq Square, attacker Color) bool {
	for _, off := range knightOffsets {
		r, c := sq.Row+off[0], sq.Col+off[1]
		if inBounds(r, c) {
			if p := b.Squares[r][c]; p != nil && p.Color == attacker && p.Type == Knight {
				return true
			}
		}
	}

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := sq.Row+dr, sq.Col+dc
			if inBounds(r, c) {
				if p := b.Squares[r][c]; p != nil && p.Color == attacker && p.Type == King {
					return true
				}
			}
		}
	}

	// A pawn on (row - dir, col ± 1) attacks (row, col).
	pawnDir := 1
	if attacker == Black {
		pawnDir = -1
	}
	pawnRow := sq.Row - pawnDir
	for _, dc := range [2]int{-1, 1} {
		c := sq.Col + dc
		if inBounds(pawnRow, c) {
			if p := b.Squares[pawnRow][c]; p != nil && p.Color == attacker && p.Type == Pawn {
				return true
			}
		}
	}

	for _, dir := range straightDirs {
		r, c := sq.Row+dir[0], sq.Col+dir[1]
		for inBounds(r, c) {
			if p := b.Squares[r][c]; p != nil {
				if p.Color == attacker && (p.Type == Rook || p.Type == Queen) {
					return true
				}
				break
			}
			r += dir[0]
			c += dir[1]
		}
	}

	for _, dir := range diagonalDirs {
		r, c := sq.Row+dir[0], sq.Col+dir[1]
		for inBounds(r, c) {
			if p := b.Squares[r][c]; p != nil {
				if p.Color == attacker && (p.Type == Bishop || p.Type == Queen) {
					return true
				}
				break
			}
			r += dir[0]
			c += dir[1]
		}
	}

	return false
}

func (b *Board) IsInCheck(color Color) bool {
	king, ok := b.FindKing(color)
	if !ok {
		return false
	}
	return b.IsSquareAttackedBy(king, color.Opposite())
}

func pieceKey(pt PieceType) uint64 {
	switch pt {
	case Pawn:
		return 1
	case Knight:
		return 2
	case Bishop:
		return 3
	case Rook:
		return 4
	case Queen:
		return 5
	case King:
		return 6
	}
	return 0
}

// Hash is a deterministic 64-bit fingerprint of piece placement, side to
// move, castling rights and en-passant target. Used only for repetition and
// draw-avoidance purposes; collisions are tolerated.
func (b *Board) Hash() uint64 {
	var hash uint64
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.Squares[r][c]
			if p == nil {
				continue
			}
			sqVal := pieceKey(p.Type)
			if p.Color == Black {
				sqVal += 7
			}
			hash ^= sqVal * (0x9e3779b97f4a7c15 + uint64(r*8+c)*0x517cc1b727220a95)
		}
	}
	if b.Turn == Black {
		hash ^= 0xdeadbeefcafe1234
	}
	if b.Castling.WhiteKingside {
		hash ^= 0x1
	}
	if b.Castling.WhiteQueenside {
		hash ^= 0x2
	}
	if b.Castling.BlackKingside {
		hash ^= 0x4
	}
	if b.Castling.BlackQueenside {
		hash ^= 0x8
	}
	if b.EnPassant != nil {
		hash ^= uint64(b.EnPassant.Row*8+b.EnPassant.Col) * 0xabcdef0123456789
	}
	return hash
}

func (b *Board) isThreefoldRepetition() bool {
	if len(b.History) < 5 {
		return false
	}
	current := b.Hash()
	count := 0
	for _, h := range b.History {
		if h == current {
			count++
		}
	}
	// The current position is already in history, so 3 entries = 3 occurrences.
	return count >= 3
}

// hasInsufficientMaterial recognizes bare kings and king+single-minor vs
// bare king. Other drawn balances (e.g. two knights vs king) are deliberately
// not covered; the evaluator and its tuning are calibrated against this rule.
func (b *Board) hasInsufficientMaterial() bool {
	var white, black []PieceType
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.Squares[r][c]
			if p == nil {
				continue
			}
			if p.Color == White {
				white = append(white, p.Type)
			} else {
				black = append(black, p.Type)
			}
		}
	}
	if len(white) == 1 && len(black) == 1 {
		return true
	}
	if len(white) == 1 && len(black) == 2 && hasMinor(black) {
		return true
	}
	if len(black) == 1 && len(white) == 2 && hasMinor(white) {
		return true
	}
	return false
}

func hasMinor(pieces []PieceType) bool {
	for _, pt := range pieces {
		if pt == Bishop || pt == Knight {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// applyMoveNoStatus performs the board mutation without evaluating terminal
// conditions. The legality filter uses it so that filtering stays cheap.
func (b *Board) applyMoveNoStatus(m Move) {
	piece := b.Squares[m.From.Row][m.From.Col]
	if piece == nil {
		return
	}
	b.LastMove = &Move{From: m.From, To: m.To, Promotion: m.Promotion}

	isPawnMove := piece.Type == Pawn
	isCapture := b.Squares[m.To.Row][m.To.Col] != nil

	if captured := b.Squares[m.To.Row][m.To.Col]; captured != nil {
		if captured.Color == White {
			b.CapturedWhite = append(b.CapturedWhite, captured.Type)
		} else {
			b.CapturedBlack = append(b.CapturedBlack, captured.Type)
		}
	}

	// En passant removes the pawn beside the destination, on the mover's
	// origin row.
	if isPawnMove && b.EnPassant != nil && m.To == *b.EnPassant {
		if ep := b.Squares[m.From.Row][m.To.Col]; ep != nil {
			if ep.Color == White {
				b.CapturedWhite = append(b.CapturedWhite, ep.Type)
			} else {
				b.CapturedBlack = append(b.CapturedBlack, ep.Type)
			}
			b.Squares[m.From.Row][m.To.Col] = nil
		}
	}

	b.Squares[m.To.Row][m.To.Col] = piece
	b.Squares[m.From.Row][m.From.Col] = nil

	if m.Promotion != "" {
		b.Squares[m.To.Row][m.To.Col] = &Piece{Type: m.Promotion, Color: piece.Color}
	}

	// Castling relocates the rook.
	if piece.Type == King {
		switch m.To.Col - m.From.Col {
		case 2:
			b.Squares[m.From.Row][5] = b.Squares[m.From.Row][7]
			b.Squares[m.From.Row][7] = nil
		case -2:
			b.Squares[m.From.Row][3] = b.Squares[m.From.Row][0]
			b.Squares[m.From.Row][0] = nil
		}
	}

	if piece.Type == King {
		if piece.Color == White {
			b.Castling.WhiteKingside = false
			b.Castling.WhiteQueenside = false
		} else {
			b.Castling.BlackKingside = false
			b.Castling.BlackQueenside = false
		}
	}
	if piece.Type == Rook {
		switch {
		case piece.Color == White && m.From == (Square{Row: 0, Col: 0}):
			b.Castling.WhiteQueenside = false
		case piece.Color == White && m.From == (Square{Row: 0, Col: 7}):
			b.Castling.WhiteKingside = false
		case piece.Color == Black && m.From == (Square{Row: 7, Col: 0}):
			b.Castling.BlackQueenside = false
		case piece.Color == Black && m.From == (Square{Row: 7, Col: 7}):
			b.Castling.BlackKingside = false
		}
	}
	// A rook captured on its home square also loses the right.
	switch m.To {
	case Square{Row: 0, Col: 0}:
		b.Castling.WhiteQueenside = false
	case Square{Row: 0, Col: 7}:
		b.Castling.WhiteKingside = false
	case Square{Row: 7, Col: 0}:
		b.Castling.BlackQueenside = false
	case Square{Row: 7, Col: 7}:
		b.Castling.BlackKingside = false
	}

	if isPawnMove && abs(m.From.Row-m.To.Row) == 2 {
		b.EnPassant = &Square{Row: (m.From.Row + m.To.Row) / 2, Col: m.From.Col}
	} else {
		b.EnPassant = nil
	}

	if isPawnMove || isCapture {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}

	if b.Turn == Black {
		b.FullmoveNumber++
	}
	b.Turn = b.Turn.Opposite()
	b.History = append(b.History, b.Hash())
}

// ApplyMove mutates the board and then evaluates end-of-game conditions in
// fixed priority order: checkmate, stalemate, fifty-move rule, threefold
// repetition, insufficient material. Once GameOver is set no later condition
// overwrites the result. Applying a move from an empty origin square is a
// no-op; the board is left untouched.
func (b *Board) ApplyMove(m Move) {
	if !inBounds(m.From.Row, m.From.Col) || !inBounds(m.To.Row, m.To.Col) {
		return
	}
	if b.Squares[m.From.Row][m.From.Col] == nil {
		return
	}
	b.applyMoveNoStatus(m)

	if b.GameOver {
		return
	}
	switch {
	case len(b.GenerateLegalMoves(b.Turn)) == 0:
		b.GameOver = true
		if b.IsInCheck(b.Turn) {
			if b.Turn == White {
				b.Result = ResultBlackWins
			} else {
				b.Result = ResultWhiteWins
			}
		} else {
			b.Result = ResultStalemate
		}
	case b.HalfmoveClock >= 100:
		b.GameOver = true
		b.Result = ResultFiftyMoveRule
	case b.isThreefoldRepetition():
		b.GameOver = true
		b.Result = ResultRepetition
	case b.hasInsufficientMaterial():
		b.GameOver = true
		b.Result = ResultInsufficientMaterial
	}
}
