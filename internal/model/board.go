package model

import (
	"encoding/json"
	"fmt"
)

const boardSize = 8

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// String returns the square in algebraic notation, e.g. "e4".
func (p Position) String() string {
	if !InBounds(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

// InBounds reports whether both coordinates lie on the board.
func InBounds(p Position) bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

// Board is an 8x8 grid indexed [row][column]. Row 0 is rank 8.
type Board struct {
	cells [boardSize][boardSize]Piece
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for x, t := range backRank {
		b.cells[0][x] = Piece{Type: t, Color: Black}
		b.cells[7][x] = Piece{Type: t, Color: White}
		b.cells[1][x] = Piece{Type: Pawn, Color: Black}
		b.cells[6][x] = Piece{Type: Pawn, Color: White}
	}
	return b
}

// Occupant returns the piece on the square. Off-board squares are empty.
func (b *Board) Occupant(p Position) (Piece, bool) {
	if !InBounds(p) {
		return NoPiece, false
	}
	pc := b.cells[p.Y][p.X]
	return pc, !pc.IsZero()
}

// Place writes the square unconditionally. NoPiece clears it.
func (b *Board) Place(p Position, pc Piece) {
	b.cells[p.Y][p.X] = pc
}

func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, boardSize)
	for y := range rows {
		rows[y] = make([]*Piece, boardSize)
		for x := range rows[y] {
			if pc := b.cells[y][x]; !pc.IsZero() {
				rows[y][x] = &pc
			}
		}
	}
	return json.Marshal(rows)
}
