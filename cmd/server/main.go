package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessvar-backend/internal/config"
	"github.com/benbeisheim/chessvar-backend/internal/controller"
	"github.com/benbeisheim/chessvar-backend/internal/middleware"
	"github.com/benbeisheim/chessvar-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(cfg.MatchmakingInterval)
	go gameManager.Run(ctx)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	wsConfig := websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.AllowOrigins,
	}

	// Set up WebSocket routes
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.Register(api.Group("/game"))

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
