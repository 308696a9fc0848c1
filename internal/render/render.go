// Package render formats cards, hands and table state for the terminal.
package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	HandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	WinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	TableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// Card renders a card as rank and suit symbol, red for hearts and diamonds.
func Card(c poker.Card) string {
	text := c.Rank.String() + c.Suit.Symbol()
	if c.Suit.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

// Cards renders cards in brackets; no cards renders as an empty string.
func Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return ""
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Hand renders an evaluated hand: its category followed by its five cards.
func Hand(h poker.Hand) string {
	return HandStyle.Render(h.Type.String()) + " " + Cards(h.Cards())
}

// State renders the table: pot, board and one row per seated player. name
// maps ids to display names; nil shows ids.
func State(s game.State, name func(uuid.UUID) string) string {
	if name == nil {
		name = uuid.UUID.String
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  pot %d  blinds %d/%d", s.Street(), s.Pot, s.Blinds.Small, s.Blinds.Big)
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")
	if board := Cards(s.Board); board != "" {
		b.WriteString("board " + board + "\n")
	}

	toAct, acting := s.PlayerToAct()
	for i, id := range s.Players {
		var marks []string
		if i == s.DealerPosition {
			marks = append(marks, "D")
		}
		if acting && id == toAct && s.HandInProgress() {
			marks = append(marks, ActionStyle.Render("to act"))
		}
		row := fmt.Sprintf("%-12s %6d", name(id), s.Stacks[id])
		if bet := s.Bets[id]; bet > 0 {
			row += fmt.Sprintf("  bet %d", bet)
		}
		if hole := Cards(s.Holes[id]); hole != "" {
			row += "  " + hole
		}
		switch {
		case slices.Contains(s.Winners, id):
			row = WinnerStyle.Render(row + "  wins")
		case !s.Playing(id) && s.HandInProgress():
			row = MutedStyle.Render(row + "  out")
		}
		if len(marks) > 0 {
			row += "  " + strings.Join(marks, " ")
		}
		b.WriteString(row + "\n")
	}
	return TableStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}
