package game

import "errors"

var (
	// ErrUnknownPlayer is returned when an action names a player missing
	// from the collection it needs (seated players, in-play players or holes).
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrIllegalAction is returned when an action is not allowed in the
	// current state, e.g. a non-positive amount or dealing twice.
	ErrIllegalAction = errors.New("illegal action")
)
