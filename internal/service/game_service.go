package service

import (
	"fmt"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchStatus(playerID string) (model.MatchFoundEvent, bool) {
	return gs.gameManager.MatchStatus(playerID)
}

func (gs *GameService) GetGameState(gameID string) (Snapshot, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) (Snapshot, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) LegalTargets(gameID string, square string) ([]model.Position, error) {
	return gs.gameManager.LegalTargets(gameID, square)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// SendTo writes msg to conn without racing the game's broadcasts.
func (gs *GameService) SendTo(gameID string, conn Conn, msg ws.Message) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}
	return session.Send(conn, msg)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
