// Package view draws boards as text.
package view

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessvar-backend/internal/model"
)

const colLabels = "   a  b  c  d  e  f  g  h  "

// Render draws the board with file letters above and below and rank numbers on
// both sides. Black pieces are uppercase, white pieces lowercase and empty
// squares are dots.
func Render(b model.Board) string {
	var sb strings.Builder
	sb.WriteString(colLabels + "\n")
	for y := 0; y < 8; y++ {
		rank := 8 - y
		cells := make([]string, 8)
		for x := range cells {
			cells[x] = " " + string(symbol(&b, model.Position{X: x, Y: y}))
		}
		fmt.Fprintf(&sb, "%d %s %d\n", rank, strings.Join(cells, " "), rank)
	}
	sb.WriteString(colLabels + "\n")
	return sb.String()
}

func symbol(b *model.Board, p model.Position) byte {
	pc, ok := b.Occupant(p)
	if !ok {
		return '.'
	}
	letter := pc.Type.Letter()
	if pc.Color == model.White {
		letter += 'a' - 'A'
	}
	return letter
}
