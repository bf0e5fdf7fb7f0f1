package model

import (
	"sync"
	"time"
)

// Clock accumulates how long one side has spent thinking. The variant has no
// time control, so a clock only reports and never ends a game.
type Clock struct {
	mu          sync.Mutex
	used        time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	now         func() time.Time
}

type ClientClock struct {
	Used      int  `json:"used"` // tenths of a second
	IsRunning bool `json:"isRunning"`
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.used += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Used() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.used + c.now().Sub(c.lastStarted)
	}
	return c.used
}

func (c *Clock) Client() ClientClock {
	used := c.Used()
	c.mu.Lock()
	defer c.mu.Unlock()
	return ClientClock{Used: int(used.Milliseconds() / 100), IsRunning: c.isRunning}
}
