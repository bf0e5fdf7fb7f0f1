package model

import (
	chess "github.com/corentings/chess/v2"
)

var fenPieceTypes = map[PieceType]chess.PieceType{
	King:   chess.King,
	Queen:  chess.Queen,
	Rook:   chess.Rook,
	Bishop: chess.Bishop,
	Knight: chess.Knight,
	Pawn:   chess.Pawn,
}

// FEN returns the piece placement field of a FEN record for the board, e.g.
// "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" for the starting position.
func (b *Board) FEN() string {
	squares := make(map[chess.Square]chess.Piece)
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			pc := b.cells[y][x]
			if pc.IsZero() {
				continue
			}
			color := chess.White
			if pc.Color == Black {
				color = chess.Black
			}
			sq := chess.NewSquare(chess.File(x), chess.Rank(boardSize-1-y))
			squares[sq] = chess.NewPiece(fenPieceTypes[pc.Type], color)
		}
	}
	return chess.NewBoard(squares).String()
}
