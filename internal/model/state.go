package model

import "github.com/pschuster/fianchetto/internal/chess"

// PieceState is one occupied square in the snapshot; empty squares are nil.
type PieceState struct {
	Type  chess.PieceType `json:"type"`
	Color chess.Color     `json:"color"`
}

// GameState is the read-only projection sent to a host UI: per-square piece
// identity, side to move, result, check flag, the full legal-move list for
// highlighting, capture lists, last-move squares and the last AI evaluation
// count.
type GameState struct {
	Squares       [8][8]*PieceState `json:"squares"`
	ToMove        chess.Color       `json:"toMove"`
	GameOver      bool              `json:"gameOver"`
	Result        string            `json:"result,omitempty"`
	IsCheck       bool              `json:"isCheck"`
	LegalMoves    []chess.Move      `json:"legalMoves"`
	CapturedWhite []chess.PieceType `json:"capturedWhite"`
	CapturedBlack []chess.PieceType `json:"capturedBlack"`
	LastMove      *chess.Move       `json:"lastMove"`
	Evals         uint64            `json:"evals"`
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return buildState(g.board, g.lastEvals)
}

func buildState(b *chess.Board, evals uint64) GameState {
	state := GameState{
		ToMove:        b.Turn,
		GameOver:      b.GameOver,
		Result:        b.Result,
		IsCheck:       b.IsInCheck(b.Turn),
		LegalMoves:    b.GenerateLegalMoves(b.Turn),
		CapturedWhite: append([]chess.PieceType(nil), b.CapturedWhite...),
		CapturedBlack: append([]chess.PieceType(nil), b.CapturedBlack...),
		Evals:         evals,
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.Squares[r][c]; p != nil {
				state.Squares[r][c] = &PieceState{Type: p.Type, Color: p.Color}
			}
		}
	}
	if b.LastMove != nil {
		lm := *b.LastMove
		state.LastMove = &lm
	}
	return state
}
