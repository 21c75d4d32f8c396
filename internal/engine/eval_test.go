package engine

import (
	"math"
	"testing"

	"github.com/pschuster/fianchetto/internal/chess"
)

func materialOnly() Config {
	var cfg = NewConfig()
	cfg.MateModule = false
	cfg.CentreModule = false
	cfg.PassedPawnModule = false
	cfg.DrawPenaltyModule = false
	return cfg
}

func TestEvaluateStartPositionBalanced(t *testing.T) {
	var b = chess.NewBoard()
	var cfg = NewConfig()
	white := Evaluate(b, chess.White, &cfg)
	black := Evaluate(b, chess.Black, &cfg)
	if white != -black {
		t.Errorf("white %v and black %v scores are not symmetric", white, black)
	}
	if math.Abs(white) > 1 {
		t.Errorf("start position score %v, want near zero", white)
	}
}

func TestEvaluateMaterial(t *testing.T) {
	var b = chess.NewBoard()
	b.Squares[7][3] = nil // remove the black queen
	var cfg = materialOnly()

	if got := Evaluate(b, chess.White, &cfg); got != 9 {
		t.Errorf("white score = %v, want 9", got)
	}
	if got := Evaluate(b, chess.Black, &cfg); got != -9 {
		t.Errorf("black score = %v, want -9", got)
	}
}

func TestEvaluateCheckmate(t *testing.T) {
	// Back-rank mate: black king cornered by queen and king.
	var b = chess.EmptyBoard()
	b.Squares[7][0] = &chess.Piece{Type: chess.King, Color: chess.Black}
	b.Squares[6][1] = &chess.Piece{Type: chess.Queen, Color: chess.White}
	b.Squares[5][1] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Turn = chess.Black

	var cfg = NewConfig()
	if got := Evaluate(b, chess.White, &cfg); got < 9000 {
		t.Errorf("winner's score = %v, want > 9000", got)
	}
	if got := Evaluate(b, chess.Black, &cfg); got > -9000 {
		t.Errorf("loser's score = %v, want < -9000", got)
	}
}

func TestEvaluateStalemateIsNeutral(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[0][0] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[2][1] = &chess.Piece{Type: chess.Queen, Color: chess.Black}
	b.Squares[2][2] = &chess.Piece{Type: chess.King, Color: chess.Black}

	var cfg = NewConfig()
	got := Evaluate(b, chess.Black, &cfg)
	// The mate module contributes nothing; only material remains.
	if math.Abs(got) > 100 {
		t.Errorf("stalemate scored %v, want no mate bonus", got)
	}
}

func TestEvaluateCheckPenalty(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[0][4] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[4][4] = &chess.Piece{Type: chess.Rook, Color: chess.Black}
	b.Squares[7][0] = &chess.Piece{Type: chess.King, Color: chess.Black}

	var cfg = NewConfig()
	cfg.MaterialModule = false
	cfg.CentreModule = false
	cfg.PassedPawnModule = false
	cfg.DrawPenaltyModule = false

	if got := Evaluate(b, chess.White, &cfg); got != -cfg.Weights.CheckPenalty {
		t.Errorf("score in check = %v, want %v", got, -cfg.Weights.CheckPenalty)
	}
}

func TestPassedPawnBonus(t *testing.T) {
	board := func(blocked bool) *chess.Board {
		var b = chess.EmptyBoard()
		b.Squares[0][4] = &chess.Piece{Type: chess.King, Color: chess.White}
		b.Squares[7][4] = &chess.Piece{Type: chess.King, Color: chess.Black}
		b.Squares[4][0] = &chess.Piece{Type: chess.Pawn, Color: chess.White}
		if blocked {
			b.Squares[6][1] = &chess.Piece{Type: chess.Pawn, Color: chess.Black}
		}
		return b
	}

	var w = DefaultWeights()
	passed := evalPassedPawns(board(false), &w)
	notPassed := evalPassedPawns(board(true), &w)
	if passed <= notPassed {
		t.Errorf("passed pawn %v should outscore blocked pawn %v", passed, notPassed)
	}

	// Advancement 3 (a5 from a2): base + 9 * quadratic.
	want := w.PassedPawnBase + 9*w.PassedPawnQuadratic
	if math.Abs(passed-want) > 1e-9 {
		t.Errorf("passed pawn score = %v, want %v", passed, want)
	}
}

func TestQueenPromotionDominates(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[0][4] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[7][7] = &chess.Piece{Type: chess.King, Color: chess.Black}
	b.Squares[6][0] = &chess.Piece{Type: chess.Pawn, Color: chess.White}

	var cfg = NewConfig()
	score := func(pt chess.PieceType) float64 {
		clone := b.Clone()
		clone.ApplyMove(chess.Move{From: chess.Square{Row: 6, Col: 0}, To: chess.Square{Row: 7, Col: 0}, Promotion: pt})
		return Evaluate(clone, chess.White, &cfg)
	}

	queen := score(chess.Queen)
	for _, pt := range []chess.PieceType{chess.Rook, chess.Bishop, chess.Knight} {
		if got := score(pt); queen <= got {
			t.Errorf("queen promotion %v should outscore %s promotion %v", queen, pt, got)
		}
	}
}

func TestDrawPenalty(t *testing.T) {
	var b = chess.NewBoard()
	var w = DefaultWeights()
	if got := evalDrawPenalty(b, &w); got != 0 {
		t.Errorf("fresh position penalized: %v", got)
	}

	b.History = append(b.History, b.Hash())
	if got := evalDrawPenalty(b, &w); got != -w.RepeatPenalty {
		t.Errorf("repeated position = %v, want %v", got, -w.RepeatPenalty)
	}
}

func TestEvaluateBreakdownMatchesTotal(t *testing.T) {
	var b = chess.NewBoard()
	b.ApplyMove(chess.Move{From: chess.Square{Row: 1, Col: 4}, To: chess.Square{Row: 3, Col: 4}})
	b.ApplyMove(chess.Move{From: chess.Square{Row: 6, Col: 2}, To: chess.Square{Row: 4, Col: 2}})

	var cfg = NewConfig()
	for _, color := range []chess.Color{chess.White, chess.Black} {
		bd := EvaluateBreakdown(b, color, &cfg)
		total := Evaluate(b, color, &cfg)
		if math.Abs(bd.Total-total) > 1e-9 {
			t.Errorf("%s breakdown total %v != evaluate %v", color, bd.Total, total)
		}
	}
}

func TestDisabledModulesContributeNothing(t *testing.T) {
	var b = chess.NewBoard()
	b.Squares[7][3] = nil

	var cfg = NewConfig()
	cfg.MaterialModule = false
	bd := EvaluateBreakdown(b, chess.White, &cfg)
	if bd.Material != 0 {
		t.Errorf("disabled material module contributed %v", bd.Material)
	}
}
