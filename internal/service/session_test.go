package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, v.(ws.Message))
	return nil
}

func (f *fakeConn) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeConn) WriteMessage(int, []byte) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) last(t *testing.T) Snapshot {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		t.Fatalf("no messages received")
	}
	msg := f.messages[len(f.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("expected %s, got %s", ws.MessageTypeGameState, msg.Type)
	}
	var snap struct {
		Turn  int             `json:"turn"`
		State model.GameState `json:"state"`
		FEN   string          `json:"fen"`
		Sound string          `json:"sound"`
	}
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return Snapshot{Turn: snap.Turn, State: snap.State, FEN: snap.FEN, Sound: snap.Sound}
}

func seatedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("game-1")
	if color, err := s.AddPlayer("alice"); err != nil || color != model.White {
		t.Fatalf("alice: %s %v", color, err)
	}
	if color, err := s.AddPlayer("bob"); err != nil || color != model.Black {
		t.Fatalf("bob: %s %v", color, err)
	}
	return s
}

func TestSessionSeats(t *testing.T) {
	s := seatedSession(t)
	if color, err := s.AddPlayer("alice"); err != nil || color != model.White {
		t.Fatalf("re-adding alice: %s %v", color, err)
	}
	if _, err := s.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
	if !s.IsPlayerInGame("bob") || s.IsPlayerInGame("carol") {
		t.Fatalf("unexpected membership")
	}
	if s.CanSpectate() {
		t.Fatalf("expected no open seat")
	}
}

func TestSessionMakeMoveEnforcesSeats(t *testing.T) {
	s := seatedSession(t)

	if _, err := s.MakeMove("bob", model.MoveRequest{From: "e7", To: "e5"}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := s.MakeMove("carol", model.MoveRequest{From: "e2", To: "e4"}); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame, got %v", err)
	}
	if _, err := s.MakeMove("alice", model.MoveRequest{From: "e2", To: "e5"}); !errors.Is(err, model.ErrIllegalMove) {
		t.Fatalf("expected illegal move, got %v", err)
	}
	if _, err := s.MakeMove("alice", model.MoveRequest{From: "z2", To: "e4"}); !errors.Is(err, model.ErrBadNotation) {
		t.Fatalf("expected bad notation, got %v", err)
	}

	snap, err := s.MakeMove("alice", model.MoveRequest{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("e2-e4: %v", err)
	}
	if snap.Turn != 1 || snap.ToMove != model.Black || snap.Sound != "move" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastMove == nil || snap.LastMove.Notation != "e4" {
		t.Fatalf("unexpected last move %+v", snap.LastMove)
	}
}

func TestSessionBroadcastsToObservers(t *testing.T) {
	s := seatedSession(t)
	white, black := &fakeConn{}, &fakeConn{}
	if err := s.RegisterConnection("alice", white); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if err := s.RegisterConnection("bob", black); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if err := s.RegisterConnection("carol", &fakeConn{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a spectator of a full game, got %v", err)
	}

	duplicate := &fakeConn{}
	if err := s.RegisterConnection("alice", duplicate); err != nil {
		t.Fatalf("duplicate register: %v", err)
	}
	if !duplicate.closed {
		t.Fatalf("expected duplicate connection to be closed")
	}

	if _, err := s.MakeMove("alice", model.MoveRequest{From: "d2", To: "d4"}); err != nil {
		t.Fatalf("d2-d4: %v", err)
	}
	for name, conn := range map[string]*fakeConn{"alice": white, "bob": black} {
		snap := conn.last(t)
		if snap.Turn != 1 || snap.FEN != "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR" {
			t.Fatalf("%s got %+v", name, snap)
		}
	}

	black.setFail(true)
	if _, err := s.MakeMove("bob", model.MoveRequest{From: "e7", To: "e5"}); err != nil {
		t.Fatalf("e7-e5: %v", err)
	}
	black.setFail(false)
	if _, err := s.MakeMove("alice", model.MoveRequest{From: "d4", To: "e5"}); err != nil {
		t.Fatalf("dxe5: %v", err)
	}
	if got := white.last(t); got.Sound != "capture" || got.Turn != 3 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	black.mu.Lock()
	received := len(black.messages)
	black.mu.Unlock()
	if received != 2 {
		t.Fatalf("expected the failing observer to be dropped after 2 messages, got %d", received)
	}

	s.UnregisterConnection("alice", &fakeConn{})
	s.connections.mu.RLock()
	_, stillThere := s.connections.connections["alice"]
	s.connections.mu.RUnlock()
	if !stillThere {
		t.Fatalf("unregistering a stale connection removed the current one")
	}
	s.UnregisterConnection("alice", white)
	s.connections.mu.RLock()
	_, stillThere = s.connections.connections["alice"]
	s.connections.mu.RUnlock()
	if stillThere {
		t.Fatalf("expected alice to be unregistered")
	}
}

func TestSessionWinSound(t *testing.T) {
	s := seatedSession(t)
	moves := []struct{ player, from, to string }{
		{"alice", "e2", "e4"}, {"bob", "d7", "d5"},
		{"alice", "e4", "d5"}, {"bob", "d8", "d5"},
		{"alice", "b1", "c3"}, {"bob", "a7", "a6"},
		{"alice", "c3", "d5"},
	}
	var snap Snapshot
	for _, m := range moves {
		var err error
		snap, err = s.MakeMove(m.player, model.MoveRequest{From: m.from, To: m.to})
		if err != nil {
			t.Fatalf("%s %s-%s: %v", m.player, m.from, m.to, err)
		}
	}
	if snap.State != model.WhiteWon || snap.Sound != "win" {
		t.Fatalf("expected white win, got %s/%s", snap.State, snap.Sound)
	}
	if snap.Players.Black.Clock.IsRunning || snap.Players.White.Clock.IsRunning {
		t.Fatalf("expected both clocks stopped after the game ended")
	}
	if _, err := s.MakeMove("bob", model.MoveRequest{From: "a6", To: "a5"}); model.ReasonOf(err) != model.ReasonGameOver {
		t.Fatalf("expected game over, got %v", err)
	}
}

func TestSessionLegalTargets(t *testing.T) {
	s := seatedSession(t)
	targets, err := s.LegalTargets("b1")
	if err != nil {
		t.Fatalf("legal targets: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 knight targets, got %v", targets)
	}
	if _, err := s.LegalTargets("b0"); !errors.Is(err, model.ErrBadNotation) {
		t.Fatalf("expected bad notation, got %v", err)
	}
}

func TestSessionBroadcastsInMoveOrder(t *testing.T) {
	s := seatedSession(t)
	observer := &fakeConn{}
	if err := s.RegisterConnection("alice", observer); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Both sides shuffle a knight out and back, racing each other for the turn.
	shuffle := func(player string, squares [2]string) {
		for i := 0; i < 20; i++ {
			req := model.MoveRequest{From: squares[i%2], To: squares[(i+1)%2]}
			for {
				_, err := s.MakeMove(player, req)
				if err == nil {
					break
				}
				if !errors.Is(err, ErrNotYourTurn) {
					t.Errorf("%s %s-%s: %v", player, req.From, req.To, err)
					return
				}
			}
		}
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); shuffle("alice", [2]string{"g1", "f3"}) }()
	go func() { defer wg.Done(); shuffle("bob", [2]string{"g8", "f6"}) }()
	wg.Wait()

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.messages) != 41 {
		t.Fatalf("expected the join snapshot and 40 moves, got %d messages", len(observer.messages))
	}
	for i, msg := range observer.messages {
		var snap struct {
			Turn int `json:"turn"`
		}
		if err := json.Unmarshal(msg.Payload, &snap); err != nil {
			t.Fatalf("decode message %d: %v", i, err)
		}
		if snap.Turn != i {
			t.Fatalf("message %d carried turn %d", i, snap.Turn)
		}
	}
}
