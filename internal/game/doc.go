// Package game implements the Texas Hold'em state machine.
//
// A State is an immutable snapshot of one table: seated players, stacks,
// the hand in progress and its betting. Reduce applies an Action to a State
// and returns a new State; the input is never modified, so earlier States
// remain valid for any reader holding them.
//
// # Actions
//
// Every ActionType belongs to one Category:
//   - CategoryTable: AddPlayer, BuyIn, CashOut, SetBlinds
//   - CategoryGame: StartGame, Deal, DealFlop, DealTurn, DealRiver, EndRound, Showdown, EndGame
//   - CategoryPlayer: Fold, Check, Bet, Call, Raise
//
// Reduce validates the action against the State and fails with
// ErrUnknownPlayer or ErrIllegalAction rather than producing an
// inconsistent State.
//
// # Deterministic Testing
//
// Shuffles and odd-chip assignment draw from the *rand.Rand passed to Reduce:
//
//	rng := randutil.New(42)
//	s, err := game.Reduce(s, game.StartGameAction(game.DefaultBlinds), rng)
//
// # Scope of the core
//
// The core does not decide when a betting round is over, nor whose turn it
// is beyond tracking ToAct. Callers sequence phases and check legality with
// IsValidAction; see the orchestrator package for a reference driver.
package game
