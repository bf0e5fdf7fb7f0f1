package model

// checkShape decides whether the piece may travel from -> to on board b. The
// shared preconditions (bounds, turn, friendly fire) have already passed. It
// returns "" when the move is legal.
func checkShape(b *Board, piece Piece, from, to Position) Reason {
	switch piece.Type {
	case King:
		return checkKing(from, to)
	case Queen:
		return checkQueen(b, from, to)
	case Rook:
		return checkRook(b, from, to)
	case Bishop:
		return checkBishop(b, from, to)
	case Knight:
		return checkKnight(from, to)
	case Pawn:
		return checkPawn(b, piece.Color, from, to)
	default:
		return ReasonIllegalShape
	}
}

func checkKing(from, to Position) Reason {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if max(dx, dy) != 1 {
		return ReasonIllegalShape
	}
	return ""
}

func checkKnight(from, to Position) Reason {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if (dx == 1 && dy == 2) || (dx == 2 && dy == 1) {
		return ""
	}
	return ReasonIllegalShape
}

func isOrthogonal(from, to Position) bool {
	return (from.X == to.X) != (from.Y == to.Y)
}

func isDiagonal(from, to Position) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	return dx == dy && dx > 0
}

func checkRook(b *Board, from, to Position) Reason {
	if !isOrthogonal(from, to) {
		return ReasonIllegalShape
	}
	return checkPath(b, from, to)
}

func checkBishop(b *Board, from, to Position) Reason {
	if !isDiagonal(from, to) {
		return ReasonIllegalShape
	}
	return checkPath(b, from, to)
}

func checkQueen(b *Board, from, to Position) Reason {
	if !isOrthogonal(from, to) && !isDiagonal(from, to) {
		return ReasonIllegalShape
	}
	return checkPath(b, from, to)
}

func checkPawn(b *Board, color Color, from, to Position) Reason {
	dx := to.X - from.X
	advance := (to.Y - from.Y) * color.forward()

	if target, occupied := b.Occupant(to); occupied && target.Color != color {
		if abs(dx) == 1 && advance == 1 {
			return ""
		}
		return ReasonIllegalShape
	}

	if dx != 0 {
		return ReasonIllegalShape
	}
	switch advance {
	case 1:
		return ""
	case 2:
		if from.Y != color.homeRank() {
			return ReasonIllegalShape
		}
		between := Position{X: from.X, Y: from.Y + color.forward()}
		if _, occupied := b.Occupant(between); occupied {
			return ReasonPathBlocked
		}
		return ""
	default:
		return ReasonIllegalShape
	}
}

// checkPath walks the squares strictly between from and to along a straight
// or diagonal line. Any occupant blocks, whatever its color.
func checkPath(b *Board, from, to Position) Reason {
	step := Position{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	for sq := (Position{X: from.X + step.X, Y: from.Y + step.Y}); sq != to; sq = (Position{X: sq.X + step.X, Y: sq.Y + step.Y}) {
		if _, occupied := b.Occupant(sq); occupied {
			return ReasonPathBlocked
		}
	}
	return ""
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
