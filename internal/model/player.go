package model

// Player is someone waiting in the matchmaking queue.
type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color Color       `json:"color"`
	Clock ClientClock `json:"clock"`
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
