package service

import (
	"sync"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer at a time per websocket
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session is a game together with its two seats, think clocks and observers.
// The engine is single threaded; the session mutex serialises access to it.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	white       string
	black       string
	sound       string
	whiteClock  *model.Clock
	blackClock  *model.Clock
	connections *GameConnections
}

// Snapshot is the state of a session as sent to clients.
type Snapshot struct {
	ID        string          `json:"id"`
	Sound     string          `json:"sound"`
	Board     model.Board     `json:"board"`
	FEN       string          `json:"fen"`
	ToMove    model.Color     `json:"toMove"`
	Turn      int             `json:"turn"`
	State     model.GameState `json:"state"`
	Remaining model.Counts    `json:"remaining"`
	LastMove  *model.Ply      `json:"lastMove"`
	Players   struct {
		White model.ClientPlayer `json:"white"`
		Black model.ClientPlayer `json:"black"`
	} `json:"players"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		game:        model.NewGame(),
		whiteClock:  model.NewClock(),
		blackClock:  model.NewClock(),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats the player on the first free side. Re-adding a seated
// player returns their existing color.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.colorOf(playerID); ok {
		return color, nil
	}
	if s.white == "" {
		s.white = playerID
		return model.White, nil
	}
	if s.black == "" {
		s.black = playerID
		s.clockFor(s.game.ToMove()).Start()
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (s *Session) colorOf(playerID string) (model.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case playerID == s.white:
		return model.White, true
	case playerID == s.black:
		return model.Black, true
	}
	return "", false
}

func (s *Session) clockFor(c model.Color) *model.Clock {
	if c == model.White {
		return s.whiteClock
	}
	return s.blackClock
}

func (s *Session) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.colorOf(playerID)
	return ok
}

// CanSpectate reports whether a seat is still open.
func (s *Session) CanSpectate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.canSpectate()
}

func (s *Session) canSpectate() bool {
	return s.white == "" || s.black == ""
}

// MakeMove plays a move for the player. The player must hold the seat of the
// side to move; the engine decides legality.
func (s *Session) MakeMove(playerID string, req model.MoveRequest) (Snapshot, error) {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, ErrNotInGame
	}
	if color != s.game.ToMove() {
		s.mu.Unlock()
		return Snapshot{}, ErrNotYourTurn
	}
	if err := s.game.MoveNotation(req.From, req.To); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}

	ply := s.game.LastPly()
	switch {
	case s.game.State() != model.InProgress:
		s.sound = "win"
	case ply.CapturedPiece != nil:
		s.sound = "capture"
	default:
		s.sound = "move"
	}

	s.clockFor(color).Stop()
	if s.game.State() == model.InProgress {
		s.clockFor(color.Opponent()).Start()
	}
	snap := s.snapshot()
	s.connections.writeMu.Lock()
	s.mu.Unlock()

	log.Debugw("move played", "game", s.ID, "player", playerID, "move", ply.Notation, "state", snap.State)
	s.broadcastLocked(snap)
	return snap, nil
}

// LegalTargets lists the squares the piece on square may move to now.
func (s *Session) LegalTargets(square string) ([]model.Position, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalTargets(from), nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	board := s.game.Board()
	snap := Snapshot{
		ID:        s.ID,
		Sound:     s.sound,
		Board:     board,
		FEN:       board.FEN(),
		ToMove:    s.game.ToMove(),
		Turn:      s.game.Turn(),
		State:     s.game.State(),
		Remaining: s.game.Counts(),
		LastMove:  s.game.LastPly(),
	}
	snap.Players.White = model.ClientPlayer{ID: s.white, Color: model.White, Clock: s.whiteClock.Client()}
	snap.Players.Black = model.ClientPlayer{ID: s.black, Color: model.Black, Clock: s.blackClock.Client()}
	return snap
}

// RegisterConnection adds an observer. Seated players may always observe;
// others only while a seat is open.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	_, seated := s.colorOf(playerID)
	if !seated && !s.canSpectate() {
		s.mu.Unlock()
		return ErrUnauthorized
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		s.connections.mu.Unlock()
		s.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Infow("registered connection", "game", s.ID, "player", playerID)

	snap := s.snapshot()
	s.connections.writeMu.Lock()
	s.mu.Unlock()
	s.broadcastLocked(snap)
	return nil
}

// UnregisterConnection removes the observer if conn is still the one on
// record for the player.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		log.Infow("unregistered connection", "game", s.ID, "player", playerID)
		delete(s.connections.connections, playerID)
	}
}

// broadcastLocked sends snap to every observer and releases writeMu. Callers
// take writeMu before releasing s.mu, so observers see snapshots in the order
// the session produced them.
func (s *Session) broadcastLocked(snap Snapshot) {
	defer s.connections.writeMu.Unlock()

	msg, err := ws.NewMessage(ws.MessageTypeGameState, snap)
	if err != nil {
		log.Errorw("failed to marshal state", "game", s.ID, "error", err)
		return
	}

	s.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		activeConnections[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state, dropping connection", "game", s.ID, "player", playerID, "error", err)
			s.connections.mu.Lock()
			if s.connections.connections[playerID] == conn {
				delete(s.connections.connections, playerID)
			}
			s.connections.mu.Unlock()
		}
	}
}

// Send writes one message to conn, serialised with broadcasts.
func (s *Session) Send(conn Conn, msg ws.Message) error {
	s.connections.writeMu.Lock()
	defer s.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
