package model

import "encoding/json"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// PieceTypes lists every piece type in index order.
var PieceTypes = [...]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Letter is the single letter used for the piece type in board diagrams.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

// initialSupply is how many pieces of the type each color starts with.
func (p PieceType) initialSupply() int {
	switch p {
	case King, Queen:
		return 1
	case Rook, Bishop, Knight:
		return 2
	case Pawn:
		return 8
	}
	return 0
}

func (p PieceType) index() int {
	for i, t := range PieceTypes {
		if t == p {
			return i
		}
	}
	return -1
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// homeRank is the row a pawn of this color starts on.
func (c Color) homeRank() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) index() int {
	if c == White {
		return 0
	}
	return 1
}

// Piece identifies a color and type pair. All pieces of the same pair are
// indistinguishable; the zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var NoPiece = Piece{}

func (p Piece) IsZero() bool {
	return p == NoPiece
}

// Counts holds the live count of every piece identity, indexed by color then
// piece type.
type Counts [2][len(PieceTypes)]int

func newCounts() Counts {
	var c Counts
	for _, color := range []Color{White, Black} {
		for _, t := range PieceTypes {
			c[color.index()][t.index()] = t.initialSupply()
		}
	}
	return c
}

// Remaining returns the live count of the piece identity.
func (c *Counts) Remaining(p Piece) int {
	if p.IsZero() {
		return 0
	}
	return c[p.Color.index()][p.Type.index()]
}

// capture removes one piece of the identity and returns what is left. The
// count never drops below zero.
func (c *Counts) capture(p Piece) int {
	n := &c[p.Color.index()][p.Type.index()]
	if *n > 0 {
		*n--
	}
	return *n
}

func (c Counts) MarshalJSON() ([]byte, error) {
	out := map[Color]map[PieceType]int{}
	for _, color := range []Color{White, Black} {
		out[color] = map[PieceType]int{}
		for _, t := range PieceTypes {
			out[color][t] = c[color.index()][t.index()]
		}
	}
	return json.Marshal(out)
}
