package chess

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	Pawn   PieceType = "pawn"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

// Piece is immutable once placed; promotion replaces the piece rather than
// mutating it, so clones may safely share Piece values.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Square addresses one board cell. Row 0 is rank 1 (White's back rank),
// col 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
