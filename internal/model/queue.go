package model

import (
	"errors"
	"sync"
	"time"
)

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return ErrAlreadyQueued
		}
	}

	qp := QueuedPlayer{
		Player:   player,
		JoinedAt: time.Now(),
	}
	q.players = append(q.players, qp)
	return nil
}

// RemovePlayer drops a player who gave up waiting. It reports whether the
// player was queued.
func (q *Queue) RemovePlayer(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// NextPair removes and returns the two players who have waited longest. ok is
// false when fewer than two are queued.
func (q *Queue) NextPair() (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	player1 := q.players[0].Player
	player2 := q.players[1].Player
	q.players = q.players[2:]

	return player1, player2, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
