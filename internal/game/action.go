package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category selects the reducer that owns an ActionType.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryTable
	CategoryGame
	CategoryPlayer
)

func (c Category) String() string {
	return [...]string{"invalid", "table", "game", "player"}[c]
}

// ActionType enumerates every transition. Player actions are declared in
// increasing order of aggression; IsValidAction relies on that order.
type ActionType int

const (
	// Table management.
	AddPlayer ActionType = iota
	BuyIn
	CashOut
	SetBlinds

	// Phase progression.
	StartGame
	EndRound
	Deal
	DealFlop
	DealTurn
	DealRiver
	Showdown
	EndGame

	// Betting.
	Fold
	Check
	Bet
	Call
	Raise
)

var actionNames = [...]string{
	AddPlayer: "ADD_PLAYER",
	BuyIn:     "BUY_IN",
	CashOut:   "CASH_OUT",
	SetBlinds: "SET_BLINDS",
	StartGame: "START_GAME",
	EndRound:  "END_ROUND",
	Deal:      "DEAL",
	DealFlop:  "FLOP",
	DealTurn:  "TURN",
	DealRiver: "RIVER",
	Showdown:  "SHOWDOWN",
	EndGame:   "END_GAME",
	Fold:      "FOLD",
	Check:     "CHECK",
	Bet:       "BET",
	Call:      "CALL",
	Raise:     "RAISE",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

// Category returns the owning category of t.
func (t ActionType) Category() Category {
	switch {
	case t >= AddPlayer && t <= SetBlinds:
		return CategoryTable
	case t >= StartGame && t <= EndGame:
		return CategoryGame
	case t >= Fold && t <= Raise:
		return CategoryPlayer
	default:
		return CategoryInvalid
	}
}

// ParseActionType accepts the names produced by String, case-insensitively.
func ParseActionType(s string) (ActionType, error) {
	for t, name := range actionNames {
		if strings.EqualFold(name, s) {
			return ActionType(t), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrIllegalAction, s)
}

// IsValidAction reports whether a player may take action t on a street
// where the strongest action so far is maxType. Fold is always valid; Check
// and Bet only before anyone has bet; Call and Raise only after.
func IsValidAction(maxType, t ActionType) bool {
	switch t {
	case Fold:
		return true
	case Check, Bet:
		return maxType < Bet
	case Call, Raise:
		return maxType > Check
	default:
		return false
	}
}

// Action is a request to change State. Only the fields relevant to Type are
// read: Player for table and player actions, Amount for BuyIn and bets,
// Blinds for SetBlinds and StartGame, Winners for EndGame.
type Action struct {
	Type    ActionType
	Player  uuid.UUID
	Amount  int
	Blinds  Blinds
	Winners []uuid.UUID
}

func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Type.String())
	if a.Player != uuid.Nil {
		fmt.Fprintf(&b, " player=%s", a.Player)
	}
	if a.Amount != 0 {
		fmt.Fprintf(&b, " amount=%d", a.Amount)
	}
	if !a.Blinds.IsZero() {
		fmt.Fprintf(&b, " blinds=%d/%d", a.Blinds.Small, a.Blinds.Big)
	}
	if len(a.Winners) > 0 {
		fmt.Fprintf(&b, " winners=%v", a.Winners)
	}
	return b.String()
}

func AddPlayerAction(id uuid.UUID) Action {
	return Action{Type: AddPlayer, Player: id}
}

func BuyInAction(id uuid.UUID, amount int) Action {
	return Action{Type: BuyIn, Player: id, Amount: amount}
}

func CashOutAction(id uuid.UUID) Action {
	return Action{Type: CashOut, Player: id}
}

func SetBlindsAction(b Blinds) Action {
	return Action{Type: SetBlinds, Blinds: b}
}

// StartGameAction starts a hand. Zero blinds keep the table's current blinds.
func StartGameAction(b Blinds) Action {
	return Action{Type: StartGame, Blinds: b}
}

// PhaseAction builds one of the payload-free game actions: EndRound, Deal,
// DealFlop, DealTurn, DealRiver or Showdown.
func PhaseAction(t ActionType) Action {
	return Action{Type: t}
}

func EndGameAction(winners ...uuid.UUID) Action {
	return Action{Type: EndGame, Winners: winners}
}

// PlayerAction builds Fold, Check, Bet, Call or Raise. Amount is ignored for
// Fold and Check.
func PlayerAction(t ActionType, id uuid.UUID, amount int) Action {
	return Action{Type: t, Player: id, Amount: amount}
}
