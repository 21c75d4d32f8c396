package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/engine"
	"github.com/pschuster/fianchetto/internal/model"
)

// GameService is the facade the controllers talk to: it resolves game IDs
// against the manager and delegates to the game.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) MakeMove(gameID string, req model.MoveRequest) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(req)
}

func (gs *GameService) MakeAIMove(gameID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeAIMove()
}

func (gs *GameService) Hint(gameID string, depth int) (chess.Move, bool, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return chess.Move{}, false, err
	}
	move, ok := game.Hint(depth)
	return move, ok, nil
}

func (gs *GameService) EvalBreakdown(gameID string) (engine.Breakdown, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return engine.Breakdown{}, err
	}
	return game.EvalBreakdown(), nil
}

func (gs *GameService) MovesFrom(gameID string, sq chess.Square) ([]chess.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.MovesFrom(sq), nil
}

func (gs *GameService) Configure(gameID string, req model.ConfigRequest) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Configure(req)
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn *websocket.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID)
}
