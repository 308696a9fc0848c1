package poker

import "errors"

var (
	ErrInvalidCard        = errors.New("invalid card")
	ErrDeckExhausted      = errors.New("deck exhausted")
	ErrDegenerateShowdown = errors.New("not enough cards to make a hand")
)
