package model

import (
	"reflect"
	"testing"

	"github.com/pschuster/fianchetto/internal/chess"
)

func sq(row, col int) chess.Square {
	return chess.Square{Row: row, Col: col}
}

func TestMakeMoveLegal(t *testing.T) {
	var g = NewGame("test")
	if err := g.MakeMove(MoveRequest{From: sq(1, 4), To: sq(3, 4)}); err != nil {
		t.Fatal(err)
	}
	state := g.GetState()
	if state.ToMove != chess.Black {
		t.Errorf("to move = %s, want black", state.ToMove)
	}
	if state.LastMove == nil || state.LastMove.To != sq(3, 4) {
		t.Errorf("last move = %v", state.LastMove)
	}
}

func TestMakeMoveIllegalLeavesStateUntouched(t *testing.T) {
	var g = NewGame("test")
	before := g.GetState()

	var tests = []MoveRequest{
		{From: sq(1, 4), To: sq(5, 4)},                            // pawn can't jump that far
		{From: sq(4, 4), To: sq(5, 4)},                            // empty origin
		{From: sq(6, 4), To: sq(4, 4)},                            // not black's turn
		{From: sq(1, 4), To: sq(3, 4), Promotion: chess.Queen},    // spurious promotion
		{From: sq(-1, 0), To: sq(0, 0)},                           // out of range
	}
	for i, req := range tests {
		if err := g.MakeMove(req); err != ErrIllegalMove {
			t.Error(i, "err =", err)
		}
	}

	if after := g.GetState(); !reflect.DeepEqual(before, after) {
		t.Error("rejected moves changed the game state")
	}
}

func TestMakeMoveAfterGameOver(t *testing.T) {
	var g = NewGame("test")
	// Fastest mate: Black wins on move two.
	moves := []MoveRequest{
		{From: sq(1, 5), To: sq(2, 5)},
		{From: sq(6, 4), To: sq(4, 4)},
		{From: sq(1, 6), To: sq(3, 6)},
		{From: sq(7, 3), To: sq(3, 7)},
	}
	for _, req := range moves {
		if err := g.MakeMove(req); err != nil {
			t.Fatal(err)
		}
	}

	state := g.GetState()
	if !state.GameOver || state.Result != chess.ResultBlackWins {
		t.Fatalf("state = %v %q", state.GameOver, state.Result)
	}
	if err := g.MakeMove(MoveRequest{From: sq(0, 4), To: sq(1, 4)}); err != ErrGameOver {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
	if err := g.MakeAIMove(); err != nil {
		t.Errorf("ai move on finished game: %v", err)
	}
	if after := g.GetState(); !reflect.DeepEqual(state, after) {
		t.Error("finished game state changed")
	}
}

func TestMakeAIMove(t *testing.T) {
	var g = NewGame("test")
	g.config.SetDepth(1)
	g.config.AutoDeepen = false

	if err := g.MakeAIMove(); err != nil {
		t.Fatal(err)
	}
	state := g.GetState()
	if state.ToMove != chess.Black {
		t.Errorf("to move = %s, want black", state.ToMove)
	}
	if state.Evals == 0 {
		t.Error("no evaluations reported")
	}
}

func TestHintDoesNotMutate(t *testing.T) {
	var g = NewGame("test")
	g.config.AutoDeepen = false
	before := g.GetState()

	if _, ok := g.Hint(1); !ok {
		t.Fatal("no hint produced")
	}

	if after := g.GetState(); !reflect.DeepEqual(before, after) {
		t.Error("hint changed the game state")
	}
	if g.config.Depth != 2 {
		t.Errorf("hint changed the configured depth to %d", g.config.Depth)
	}
}

func TestConfigure(t *testing.T) {
	var g = NewGame("test")

	g.Configure(ConfigRequest{Module: "centre", Enabled: boolPtr(false)})
	if g.config.CentreModule {
		t.Error("centre module still enabled")
	}

	g.Configure(ConfigRequest{Depth: intPtr(99)})
	if g.config.Depth != 3 {
		t.Errorf("depth = %d, want clamp to 3", g.config.Depth)
	}
	g.Configure(ConfigRequest{Depth: intPtr(-5)})
	if g.config.Depth != 1 {
		t.Errorf("depth = %d, want clamp to 1", g.config.Depth)
	}

	// Unknown module names are ignored.
	g.Configure(ConfigRequest{Module: "oracle", Enabled: boolPtr(true)})
	if !g.config.MateModule || !g.config.MaterialModule {
		t.Error("unknown module toggled something else")
	}
}

func TestMovesFrom(t *testing.T) {
	var g = NewGame("test")
	if got := len(g.MovesFrom(sq(1, 4))); got != 2 {
		t.Errorf("e2 has %d moves, want 2", got)
	}
	if got := len(g.MovesFrom(sq(4, 4))); got != 0 {
		t.Errorf("empty square has %d moves, want 0", got)
	}
}

func TestEvalBreakdown(t *testing.T) {
	var g = NewGame("test")
	bd := g.EvalBreakdown()
	if bd.Mate != 0 {
		t.Errorf("mate term = %v in the start position", bd.Mate)
	}
	if bd.Material != 0 {
		t.Errorf("material term = %v in the start position", bd.Material)
	}
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }
