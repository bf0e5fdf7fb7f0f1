package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/service"
	"github.com/benbeisheim/chessvar-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("parse error", "game", gameID, "player", playerID, "error", err)
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(gameID, c, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// The new state reaches this connection through the broadcast.
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID string, c *websocket.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{
		Error:  err.Error(),
		Reason: string(model.ReasonOf(err)),
	})
	if merr != nil {
		return
	}
	if werr := wsc.gameService.SendTo(gameID, c, msg); werr != nil {
		log.Debugw("failed to send error", "game", gameID, "error", werr)
	}
}

// HandleMatchmaking waits for the player's next match and sends it as a
// matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	ch := make(chan model.MatchFoundEvent, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		log.Warnw("failed to register matchmaking channel", "player", playerID, "error", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	// The client sends nothing; reading only detects the disconnect.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	wsc.awaitMatch(playerID, ch, closed, func(msg ws.Message) error {
		return c.WriteJSON(msg)
	})
}

// awaitMatch sends the player's match once it arrives. A player who
// disconnects first is taken out of the queue so they are not paired into a
// game nobody will open.
func (wsc *WebSocketController) awaitMatch(playerID string, ch <-chan model.MatchFoundEvent, closed <-chan struct{}, send func(ws.Message) error) {
	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			return
		}
		if err := send(msg); err != nil {
			log.Debugw("failed to send match", "player", playerID, "error", err)
		}
	case <-closed:
		if wsc.gameService.LeaveMatchmaking(playerID) {
			log.Debugw("left matchmaking on disconnect", "player", playerID)
		}
	}
}
