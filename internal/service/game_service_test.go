package service

import (
	"errors"
	"testing"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/model"
)

func TestGameManager(t *testing.T) {
	var gm = NewGameManager()

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatal(err)
	}
	if err := gm.CreateGame("g1"); err == nil {
		t.Error("duplicate game ID accepted")
	}

	game, err := gm.GetGame("g1")
	if err != nil {
		t.Fatal(err)
	}
	if game.ID != "g1" {
		t.Errorf("game ID = %q", game.ID)
	}

	if _, err := gm.GetGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGameServiceLifecycle(t *testing.T) {
	var gs = NewGameService(NewGameManager())

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if state.ToMove != chess.White || len(state.LegalMoves) != 20 {
		t.Errorf("fresh game: to move %s, %d legal moves", state.ToMove, len(state.LegalMoves))
	}

	err = gs.MakeMove(gameID, model.MoveRequest{
		From: chess.Square{Row: 1, Col: 4},
		To:   chess.Square{Row: 3, Col: 4},
	})
	if err != nil {
		t.Fatal(err)
	}

	state, err = gs.GetGameState(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if state.ToMove != chess.Black {
		t.Errorf("to move = %s, want black", state.ToMove)
	}
}

func TestGameServiceUnknownGame(t *testing.T) {
	var gs = NewGameService(NewGameManager())

	if _, err := gs.GetGameState("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState err = %v", err)
	}
	if err := gs.MakeMove("nope", model.MoveRequest{}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("MakeMove err = %v", err)
	}
	if err := gs.MakeAIMove("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("MakeAIMove err = %v", err)
	}
	if _, err := gs.EvalBreakdown("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("EvalBreakdown err = %v", err)
	}
}
