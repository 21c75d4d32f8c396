package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/model"
	"github.com/pschuster/fianchetto/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrGameOver):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move payload",
		})
	}
	if err := gc.gameService.MakeMove(gameID, req); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeAIMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if err := gc.gameService.MakeAIMove(gameID); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(gameState)
}

func (gc *GameController) Hint(c *fiber.Ctx) error {
	depth := c.QueryInt("depth", 2)

	move, ok, err := gc.gameService.Hint(c.Params("gameId"), depth)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(fiber.Map{"hint": nil})
	}
	return c.JSON(fiber.Map{"hint": move})
}

func (gc *GameController) EvalBreakdown(c *fiber.Ctx) error {
	breakdown, err := gc.gameService.EvalBreakdown(c.Params("gameId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(breakdown)
}

func (gc *GameController) MovesFromSquare(c *fiber.Ctx) error {
	sq := chess.Square{
		Row: c.QueryInt("row", -1),
		Col: c.QueryInt("col", -1),
	}
	if sq.Row < 0 || sq.Row > 7 || sq.Col < 0 || sq.Col > 7 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col query parameters must be in 0..7",
		})
	}

	moves, err := gc.gameService.MovesFrom(c.Params("gameId"), sq)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) Configure(c *fiber.Ctx) error {
	var req model.ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid config payload",
		})
	}
	if err := gc.gameService.Configure(c.Params("gameId"), req); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Config updated",
	})
}
