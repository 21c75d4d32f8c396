package chess

// Move is a pure value with no ownership relation to any board. Promotion is
// empty except for pawn promotions, which carry the chosen piece type.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// String renders the move in UCI wire form, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	buf := []byte{
		byte('a' + m.From.Col),
		byte('1' + m.From.Row),
		byte('a' + m.To.Col),
		byte('1' + m.To.Row),
	}
	switch m.Promotion {
	case Queen:
		buf = append(buf, 'q')
	case Rook:
		buf = append(buf, 'r')
	case Bishop:
		buf = append(buf, 'b')
	case Knight:
		buf = append(buf, 'n')
	}
	return string(buf)
}

// MoveFromUCI parses a 4-5 character UCI move. Malformed or out-of-range
// input yields ok == false, never a partial move.
func MoveFromUCI(s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, false
	}
	fc := int(s[0]) - 'a'
	fr := int(s[1]) - '1'
	tc := int(s[2]) - 'a'
	tr := int(s[3]) - '1'
	if fc < 0 || fc > 7 || fr < 0 || fr > 7 || tc < 0 || tc > 7 || tr < 0 || tr > 7 {
		return Move{}, false
	}
	m := Move{
		From: Square{Row: fr, Col: fc},
		To:   Square{Row: tr, Col: tc},
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promotion = Queen
		case 'r':
			m.Promotion = Rook
		case 'b':
			m.Promotion = Bishop
		case 'n':
			m.Promotion = Knight
		default:
			return Move{}, false
		}
	}
	return m, true
}
