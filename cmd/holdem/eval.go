package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdemcore/internal/render"
	"github.com/lox/holdemcore/poker"
)

type EvalCmd struct {
	Board string   `short:"b" help:"Board cards, e.g. 'Qh Jh Th'"`
	Holes []string `arg:"" name:"hole" help:"Hole cards per player, e.g. 'AhKh' '2c 2d'"`
}

func (c *EvalCmd) Run() error {
	out, err := evaluate(c.Board, c.Holes)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// evaluate ranks every hole against the board and marks the winners.
func evaluate(board string, holes []string) (string, error) {
	boardCards, err := poker.ParseCards(board)
	if err != nil {
		return "", fmt.Errorf("board: %w", err)
	}

	hands := make([]poker.Hand, len(holes))
	holeCards := make([][]poker.Card, len(holes))
	for i, h := range holes {
		cards, err := poker.ParseCards(splitCompact(h))
		if err != nil {
			return "", fmt.Errorf("hole %q: %w", h, err)
		}
		hand, err := poker.DetermineHand(cards, boardCards)
		if err != nil {
			return "", fmt.Errorf("hole %q: %w", h, err)
		}
		hands[i] = hand
		holeCards[i] = cards
	}

	winners := poker.Best(hands)
	var b strings.Builder
	if len(boardCards) > 0 {
		fmt.Fprintf(&b, "board %s\n", render.Cards(boardCards))
	}
	for i, hand := range hands {
		line := fmt.Sprintf("%s  %s", render.Cards(holeCards[i]), render.Hand(hand))
		if len(hands) > 1 && slices.Contains(winners, i) {
			line = render.WinnerStyle.Render(line + "  wins")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// splitCompact turns "AhKh" into "Ah Kh"; input that already has separators
// is returned as is.
func splitCompact(s string) string {
	if strings.ContainsAny(s, " ,") {
		return s
	}
	runes := []rune(s)
	var parts []string
	for i := 0; i < len(runes); {
		n := 2
		if runes[i] == '1' && i+1 < len(runes) && runes[i+1] == '0' {
			n = 3
		}
		end := min(i+n, len(runes))
		parts = append(parts, string(runes[i:end]))
		i = end
	}
	return strings.Join(parts, " ")
}
