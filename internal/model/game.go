package model

// GameState is the outcome of a game so far. It leaves InProgress at most once.
type GameState string

const (
	InProgress GameState = "UNFINISHED"
	WhiteWon   GameState = "WHITE_WON"
	BlackWon   GameState = "BLACK_WON"
)

func wonBy(c Color) GameState {
	if c == White {
		return WhiteWon
	}
	return BlackWon
}

// Winner returns the winning color, or false while the game is in progress.
func (s GameState) Winner() (Color, bool) {
	switch s {
	case WhiteWon:
		return White, true
	case BlackWon:
		return Black, true
	}
	return "", false
}

// Game is one variant game: the board, the live counts of every piece
// identity, the turn counter and the outcome. A Game is not safe for
// concurrent use.
type Game struct {
	board   Board
	counts  Counts
	turn    int
	state   GameState
	lastPly *Ply
}

func NewGame() *Game {
	return &Game{
		board:  NewBoard(),
		counts: newCounts(),
		state:  InProgress,
	}
}

func (g *Game) State() GameState {
	return g.state
}

// Turn is the number of accepted moves.
func (g *Game) Turn() int {
	return g.turn
}

// ToMove is the color whose turn it is: White on even turns, Black on odd.
func (g *Game) ToMove() Color {
	if g.turn%2 == 0 {
		return White
	}
	return Black
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Counts() Counts {
	return g.counts
}

func (g *Game) Remaining(p Piece) int {
	return g.counts.Remaining(p)
}

// LastPly returns the most recent accepted move, or nil before the first one.
func (g *Game) LastPly() *Ply {
	if g.lastPly == nil {
		return nil
	}
	ply := *g.lastPly
	return &ply
}

// AttemptMove moves the piece on from to to if the move is legal and applies
// captures and the attrition win rule. A rejected move leaves the game
// untouched and returns an error matching ErrIllegalMove.
func (g *Game) AttemptMove(from, to Position) error {
	mover, reason := g.validate(from, to)
	if reason != "" {
		return &IllegalMoveError{From: from, To: to, Reason: reason}
	}
	g.commit(mover, from, to)
	return nil
}

// MoveNotation is AttemptMove for squares in algebraic notation.
func (g *Game) MoveNotation(start, end string) error {
	from, to, err := MoveRequest{From: start, To: end}.Positions()
	if err != nil {
		return err
	}
	return g.AttemptMove(from, to)
}

// LegalTargets lists every square the piece on from may move to right now.
func (g *Game) LegalTargets(from Position) []Position {
	targets := []Position{}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			to := Position{X: x, Y: y}
			if _, reason := g.validate(from, to); reason == "" {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

func (g *Game) validate(from, to Position) (Piece, Reason) {
	if !InBounds(from) || !InBounds(to) {
		return NoPiece, ReasonOutOfBounds
	}
	mover, ok := g.board.Occupant(from)
	if !ok {
		return NoPiece, ReasonEmptySquare
	}
	if mover.Color != g.ToMove() {
		return NoPiece, ReasonWrongTurn
	}
	if g.state != InProgress {
		return NoPiece, ReasonGameOver
	}
	if target, ok := g.board.Occupant(to); ok && target.Color == mover.Color {
		return NoPiece, ReasonFriendlyFire
	}
	if reason := checkShape(&g.board, mover, from, to); reason != "" {
		return NoPiece, reason
	}
	return mover, ""
}

func (g *Game) commit(mover Piece, from, to Position) {
	var captured *Piece
	if target, ok := g.board.Occupant(to); ok {
		captured = &target
		if g.counts.capture(target) == 0 {
			g.state = wonBy(mover.Color)
		}
	}
	g.board.Place(from, NoPiece)
	g.board.Place(to, mover)
	g.turn++
	ply := newPly(g.turn, mover, from, to, captured)
	g.lastPly = &ply
}
