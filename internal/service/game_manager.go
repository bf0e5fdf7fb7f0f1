// service/game_manager.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type GameManager struct {
	games            map[string]*Session
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	pendingMatches   map[string]model.MatchFoundEvent // matches not yet delivered
	interval         time.Duration
	mu               sync.RWMutex
}

func NewGameManager(interval time.Duration) *GameManager {
	return &GameManager{
		games:            make(map[string]*Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		pendingMatches:   make(map[string]model.MatchFoundEvent),
		interval:         interval,
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context) {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce pairs the two longest-waiting players into a new game. It reports
// whether a pair was made.
func (gm *GameManager) matchOnce() bool {
	player1, player2, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	session := NewSession(gameID)
	p1Color, err := session.AddPlayer(player1.ID)
	if err != nil {
		log.Errorw("error adding player to game", "game", gameID, "player", player1.ID, "error", err)
		return true
	}
	p2Color, err := session.AddPlayer(player2.ID)
	if err != nil {
		log.Errorw("error adding player to game", "game", gameID, "player", player2.ID, "error", err)
		return true
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = session
	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	log.Infow("match made", "game", gameID, "white", player1.ID, "black", player2.ID)
	return true
}

// notifyMatch hands the event to the player's channel, or parks it until one
// is registered. gm.mu must be held.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	if ch, ok := gm.matchingChannels[playerID]; ok {
		select {
		case ch <- event:
			delete(gm.matchingChannels, playerID)
			close(ch)
			return
		default:
			log.Warnw("matchmaking channel full", "player", playerID)
		}
	}
	gm.pendingMatches[playerID] = event
}

// RegisterMatchmakingChannel subscribes ch to the player's next match. The
// manager closes ch after delivering one event. ch must have a buffer.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		select {
		case ch <- event:
			close(ch)
			return nil
		default:
			gm.pendingMatches[playerID] = event
			return fmt.Errorf("matchmaking channel for %s has no buffer", playerID)
		}
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Only the current subscriber is removed; the creator still owns ch.
	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// MatchStatus returns and clears a match that was made while the player had
// no channel registered.
func (gm *GameManager) MatchStatus(playerID string) (model.MatchFoundEvent, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	event, ok := gm.pendingMatches[playerID]
	if ok {
		delete(gm.pendingMatches, playerID)
	}
	return event, ok
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = NewSession(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (Snapshot, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) (Snapshot, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.MakeMove(playerID, move)
}

func (gm *GameManager) LegalTargets(gameID string, square string) ([]model.Position, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalTargets(square)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}
