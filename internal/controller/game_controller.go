package controller

import (
	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on r.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/matchmaking/join", gc.JoinMatchmaking)
	r.Delete("/matchmaking", gc.LeaveMatchmaking)
	r.Get("/matchmaking/status", gc.MatchStatus)
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Get("/:gameId/moves/:square", gc.LegalMoves)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		log.Errorw("create game failed", "error", err)
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}
	log.Infow("player joined", "game", gameID, "player", playerID, "color", color)

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	playerID := c.Locals("playerID").(string)

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	targets, err := gc.gameService.LegalTargets(c.Params("gameId"), square)
	if err != nil {
		return sendError(c, err)
	}
	squares := make([]string, len(targets))
	for i, t := range targets {
		squares[i] = t.String()
	}
	return c.JSON(fiber.Map{
		"square":  square,
		"targets": squares,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if !gc.gameService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

func (gc *GameController) MatchStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	event, ok := gc.gameService.MatchStatus(playerID)
	if !ok {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "waiting",
		})
	}
	return c.JSON(event)
}
