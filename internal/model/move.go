package model

// MoveRequest is a move as sent by clients, in algebraic notation.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Positions parses both squares of the request.
func (m MoveRequest) Positions() (Position, Position, error) {
	from, err := ParsePosition(m.From)
	if err != nil {
		return Position{}, Position{}, err
	}
	to, err := ParsePosition(m.To)
	if err != nil {
		return Position{}, Position{}, err
	}
	return from, to, nil
}

// Ply records one accepted move.
type Ply struct {
	Number        int      `json:"number"`
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

func newPly(number int, piece Piece, from, to Position, captured *Piece) Ply {
	return Ply{
		Number:        number,
		Piece:         piece,
		From:          from,
		To:            to,
		CapturedPiece: captured,
		Notation:      plyNotation(piece, from, to, captured != nil),
	}
}

// plyNotation is short algebraic notation without check marks, which the
// variant does not have.
func plyNotation(piece Piece, from, to Position, capture bool) string {
	prefix := piece.Type.getPieceNotation()
	if piece.Type == Pawn && from.X != to.X {
		prefix = from.getFileNotation()
	}
	if capture {
		prefix += "x"
	}
	return prefix + to.getSquareNotation()
}
