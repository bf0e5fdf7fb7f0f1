package controller

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/service"
	"github.com/benbeisheim/chessvar-backend/internal/ws"
)

func TestAwaitMatchLeavesQueueOnDisconnect(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager(time.Second))
	wsc := NewWebSocketController(gs)
	if err := gs.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("join: %v", err)
	}

	closed := make(chan struct{})
	close(closed)
	sent := 0
	wsc.awaitMatch("alice", make(chan model.MatchFoundEvent), closed, func(ws.Message) error {
		sent++
		return nil
	})

	if sent != 0 {
		t.Fatalf("expected nothing sent to a closed socket, got %d", sent)
	}
	if gs.LeaveMatchmaking("alice") {
		t.Fatalf("expected alice to have been removed from the queue")
	}
}

func TestAwaitMatchSendsMatch(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager(time.Second))
	wsc := NewWebSocketController(gs)

	ch := make(chan model.MatchFoundEvent, 1)
	ch <- model.MatchFoundEvent{GameID: "game-1", Color: model.Black}
	var got []ws.Message
	wsc.awaitMatch("bob", ch, make(chan struct{}), func(msg ws.Message) error {
		got = append(got, msg)
		return nil
	})

	if len(got) != 1 || got[0].Type != ws.MessageTypeMatchFound {
		t.Fatalf("expected one matchFound message, got %+v", got)
	}
	var event model.MatchFoundEvent
	if err := json.Unmarshal(got[0].Payload, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.GameID != "game-1" || event.Color != model.Black {
		t.Fatalf("unexpected event %+v", event)
	}
}
