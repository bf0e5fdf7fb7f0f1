// Command chessvar plays the attrition variant in the terminal. Moves are read
// from stdin as two squares, e.g. "e2 e4".
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/view"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := play(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("reading moves: %v", err)
	}
}

func play(in io.Reader, out io.Writer) error {
	game := model.NewGame()
	fmt.Fprint(out, view.Render(game.Board()))

	scanner := bufio.NewScanner(in)
	for game.State() == model.InProgress {
		fmt.Fprintf(out, "%s to move> ", game.ToMove())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			fmt.Fprintln(out, "enter a move as two squares, e.g. e2 e4")
			continue
		}
		if err := game.MoveNotation(fields[0], fields[1]); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprint(out, view.Render(game.Board()))
	}
	fmt.Fprintln(out, game.State())
	return nil
}
