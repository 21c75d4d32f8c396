package engine

import (
	"testing"

	"github.com/pschuster/fianchetto/internal/chess"
)

type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

func shallowConfig() Config {
	var cfg = NewConfig()
	cfg.SetDepth(1)
	cfg.AutoDeepen = false
	return cfg
}

func TestPickMovePromotesToQueen(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[0][0] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[7][7] = &chess.Piece{Type: chess.King, Color: chess.Black}
	b.Squares[6][0] = &chess.Piece{Type: chess.Pawn, Color: chess.White}

	var cfg = shallowConfig()
	result, ok := PickMove(b, &cfg)
	if !ok {
		t.Fatal("no move picked")
	}
	if result.Move.Promotion != chess.Queen {
		t.Errorf("picked %v, want a queen promotion", result.Move)
	}
	if result.Evals == 0 {
		t.Error("no evaluations counted")
	}
}

func TestPickMoveCapturesHangingQueen(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[0][4] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[3][0] = &chess.Piece{Type: chess.Rook, Color: chess.White}
	b.Squares[3][7] = &chess.Piece{Type: chess.Queen, Color: chess.Black}
	b.Squares[7][4] = &chess.Piece{Type: chess.King, Color: chess.Black}

	var cfg = shallowConfig()
	result, ok := PickMove(b, &cfg)
	if !ok {
		t.Fatal("no move picked")
	}
	want := chess.Move{From: chess.Square{Row: 3, Col: 0}, To: chess.Square{Row: 3, Col: 7}}
	if result.Move != want {
		t.Errorf("picked %v, want Rxh4 %v", result.Move, want)
	}
}

func TestPickMoveNoLegalMoves(t *testing.T) {
	// Completed stalemate: the side to move has nothing.
	var b = chess.EmptyBoard()
	b.Squares[0][0] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[2][2] = &chess.Piece{Type: chess.King, Color: chess.Black}
	b.Squares[6][1] = &chess.Piece{Type: chess.Queen, Color: chess.Black}
	b.Turn = chess.Black
	b.ApplyMove(chess.Move{From: chess.Square{Row: 6, Col: 1}, To: chess.Square{Row: 2, Col: 1}})

	var cfg = shallowConfig()
	if _, ok := PickMove(b, &cfg); ok {
		t.Error("expected ok == false on a finished game")
	}
}

func TestPickMoveDeterministicWithFixedRand(t *testing.T) {
	var cfg = shallowConfig()
	var first chess.Move
	for i := 0; i < 3; i++ {
		var b = chess.NewBoard()
		result, ok := PickMoveRand(b, &cfg, fixedRand{v: 0.5})
		if !ok {
			t.Fatal("no move picked")
		}
		if i == 0 {
			first = result.Move
		} else if result.Move != first {
			t.Errorf("run %d picked %v, first run picked %v", i, result.Move, first)
		}
	}
}

func TestPickMoveDepthZeroDegrades(t *testing.T) {
	var b = chess.NewBoard()
	var cfg = NewConfig()
	cfg.Depth = 0 // below SetDepth's range, must still terminate
	cfg.AutoDeepen = false

	result, ok := PickMove(b, &cfg)
	if !ok {
		t.Fatal("no move picked")
	}
	if result.Evals == 0 {
		t.Error("no evaluations counted")
	}
}

func TestAutoDeepenRaisesEvals(t *testing.T) {
	// A sparse endgame keeps the deepened search cheap.
	var b = chess.EmptyBoard()
	b.Squares[0][4] = &chess.Piece{Type: chess.King, Color: chess.White}
	b.Squares[0][0] = &chess.Piece{Type: chess.Rook, Color: chess.White}
	b.Squares[7][4] = &chess.Piece{Type: chess.King, Color: chess.Black}

	var shallow = shallowConfig()
	fixed, ok := PickMoveRand(b, &shallow, fixedRand{})
	if !ok {
		t.Fatal("no move picked")
	}

	var deepened = shallowConfig()
	deepened.AutoDeepen = true
	auto, ok := PickMoveRand(b, &deepened, fixedRand{})
	if !ok {
		t.Fatal("no move picked")
	}
	if auto.Evals <= fixed.Evals {
		t.Errorf("auto-deepen evals %d, fixed-depth evals %d", auto.Evals, fixed.Evals)
	}
}

func TestMovePriorityOrdering(t *testing.T) {
	var b = chess.EmptyBoard()
	b.Squares[3][3] = &chess.Piece{Type: chess.Pawn, Color: chess.White}
	b.Squares[4][4] = &chess.Piece{Type: chess.Queen, Color: chess.Black}

	quiet := chess.Move{From: chess.Square{Row: 3, Col: 3}, To: chess.Square{Row: 4, Col: 3}}
	capture := chess.Move{From: chess.Square{Row: 3, Col: 3}, To: chess.Square{Row: 4, Col: 4}}
	promo := chess.Move{From: chess.Square{Row: 6, Col: 0}, To: chess.Square{Row: 7, Col: 0}, Promotion: chess.Queen}

	if movePriority(b, quiet) != 0 {
		t.Error("quiet move should have zero priority")
	}
	if movePriority(b, capture) <= movePriority(b, quiet) {
		t.Error("capture should outrank a quiet move")
	}
	if movePriority(b, promo) <= movePriority(b, capture) {
		t.Error("promotion should outrank a pawn capture")
	}
}

// Full AI-vs-AI games must conserve pieces: whatever leaves the board shows
// up in a capture list, and both kings survive.
func TestSelfPlayConservesPieces(t *testing.T) {
	var b = chess.NewBoard()
	var cfg = shallowConfig()

	for ply := 0; ply < 200 && !b.GameOver; ply++ {
		result, ok := PickMove(b, &cfg)
		if !ok {
			break
		}
		b.ApplyMove(result.Move)

		var onBoard, whiteKings, blackKings int
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				p := b.Squares[r][c]
				if p == nil {
					continue
				}
				onBoard++
				if p.Type == chess.King {
					if p.Color == chess.White {
						whiteKings++
					} else {
						blackKings++
					}
				}
			}
		}
		if total := onBoard + len(b.CapturedWhite) + len(b.CapturedBlack); total != 32 {
			t.Fatalf("ply %d: %d pieces accounted for, want 32", ply, total)
		}
		if whiteKings != 1 || blackKings != 1 {
			t.Fatalf("ply %d: king counts %d/%d", ply, whiteKings, blackKings)
		}
	}
}
