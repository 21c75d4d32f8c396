package chess

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateMoves returns every pseudo-legal move for the color, including
// castling and en-passant. Moves that leave the own king in check are not
// filtered here; see GenerateLegalMoves.
func (b *Board) GenerateMoves(color Color) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := b.Squares[row][col]
			if piece == nil || piece.Color != color {
				continue
			}
			switch piece.Type {
			case Pawn:
				moves = b.generatePawnMoves(row, col, color, moves)
			case Knight:
				moves = b.generateKnightMoves(row, col, color, moves)
			case Bishop:
				moves = b.generateSlidingMoves(row, col, color, diagonalDirs[:], moves)
			case Rook:
				moves = b.generateSlidingMoves(row, col, color, straightDirs[:], moves)
			case Queen:
				moves = b.generateSlidingMoves(row, col, color, straightDirs[:], moves)
				moves = b.generateSlidingMoves(row, col, color, diagonalDirs[:], moves)
			case King:
				moves = b.generateKingMoves(row, col, color, moves)
			}
		}
	}
	return moves
}

// GenerateLegalMoves filters the pseudo-legal moves by applying each one to
// a disposable clone and rejecting those that leave the own king in check.
func (b *Board) GenerateLegalMoves(color Color) []Move {
	pseudo := b.GenerateMoves(color)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		clone := b.Clone()
		clone.applyMoveNoStatus(m)
		if !clone.IsInCheck(color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// MovesFrom returns the legal moves for the side to move that originate on
// the given square.
func (b *Board) MovesFrom(sq Square) []Move {
	var moves []Move
	for _, m := range b.GenerateLegalMoves(b.Turn) {
		if m.From == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

func (b *Board) generatePawnMoves(row, col int, color Color, moves []Move) []Move {
	dir, startRow, promoRow := 1, 1, 7
	if color == Black {
		dir, startRow, promoRow = -1, 6, 0
	}
	from := Square{Row: row, Col: col}
	forward := row + dir

	// Single push, with double push from the starting rank.
	if inBounds(forward, col) && b.Squares[forward][col] == nil {
		if forward == promoRow {
			for _, pt := range promotionTypes {
				moves = append(moves, Move{From: from, To: Square{Row: forward, Col: col}, Promotion: pt})
			}
		} else {
			moves = append(moves, Move{From: from, To: Square{Row: forward, Col: col}})
			if row == startRow {
				double := forward + dir
				if inBounds(double, col) && b.Squares[double][col] == nil {
					moves = append(moves, Move{From: from, To: Square{Row: double, Col: col}})
				}
			}
		}
	}

	// Diagonal captures, including onto the en-passant target square.
	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if !inBounds(forward, c) {
			continue
		}
		to := Square{Row: forward, Col: c}
		target := b.Squares[forward][c]
		isCapture := target != nil && target.Color != color
		isEnPassant := b.EnPassant != nil && to == *b.EnPassant
		if !isCapture && !isEnPassant {
			continue
		}
		if forward == promoRow {
			for _, pt := range promotionTypes {
				moves = append(moves, Move{From: from, To: to, Promotion: pt})
			}
		} else {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	return moves
}

func (b *Board) generateKnightMoves(row, col int, color Color, moves []Move) []Move {
	from := Square{Row: row, Col: col}
	for _, off := range knightOffsets {
		r, c := row+off[0], col+off[1]
		if !inBounds(r, c) {
			continue
		}
		if p := b.Squares[r][c]; p != nil && p.Color == color {
			continue
		}
		moves = append(moves, Move{From: from, To: Square{Row: r, Col: c}})
	}
	return moves
}

func (b *Board) generateSlidingMoves(row, col int, color Color, dirs [][2]int, moves []Move) []Move {
	from := Square{Row: row, Col: col}
	for _, dir := range dirs {
		r, c := row+dir[0], col+dir[1]
		for inBounds(r, c) {
			if p := b.Squares[r][c]; p != nil {
				if p.Color != color {
					moves = append(moves, Move{From: from, To: Square{Row: r, Col: c}})
				}
				break
			}
			moves = append(moves, Move{From: from, To: Square{Row: r, Col: c}})
			r += dir[0]
			c += dir[1]
		}
	}
	return moves
}

func (b *Board) generateKingMoves(row, col int, color Color, moves []Move) []Move {
	from := Square{Row: row, Col: col}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if !inBounds(r, c) {
				continue
			}
			if p := b.Squares[r][c]; p != nil && p.Color == color {
				continue
			}
			moves = append(moves, Move{From: from, To: Square{Row: r, Col: c}})
		}
	}

	// Castling: the king must stand on its home square, must not currently
	// be in check, the gap must be empty, the rook must still be home, and
	// neither the transit nor the destination square may be attacked.
	backRank := 0
	if color == Black {
		backRank = 7
	}
	if row != backRank || col != 4 {
		return moves
	}
	if b.IsInCheck(color) {
		return moves
	}
	opponent := color.Opposite()

	canKingside := b.Castling.WhiteKingside
	canQueenside := b.Castling.WhiteQueenside
	if color == Black {
		canKingside = b.Castling.BlackKingside
		canQueenside = b.Castling.BlackQueenside
	}

	if canKingside &&
		b.Squares[backRank][5] == nil &&
		b.Squares[backRank][6] == nil &&
		isHomeRook(b.Squares[backRank][7], color) &&
		!b.IsSquareAttackedBy(Square{Row: backRank, Col: 5}, opponent) &&
		!b.IsSquareAttackedBy(Square{Row: backRank, Col: 6}, opponent) {
		moves = append(moves, Move{From: from, To: Square{Row: backRank, Col: 6}})
	}

	if canQueenside &&
		b.Squares[backRank][1] == nil &&
		b.Squares[backRank][2] == nil &&
		b.Squares[backRank][3] == nil &&
		isHomeRook(b.Squares[backRank][0], color) &&
		!b.IsSquareAttackedBy(Square{Row: backRank, Col: 3}, opponent) &&
		!b.IsSquareAttackedBy(Square{Row: backRank, Col: 2}, opponent) {
		moves = append(moves, Move{From: from, To: Square{Row: backRank, Col: 2}})
	}

	return moves
}

func isHomeRook(p *Piece, color Color) bool {
	return p != nil && p.Type == Rook && p.Color == color
}
