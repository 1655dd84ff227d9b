package sticks

import "errors"

var (
	// ErrIllegalMove is returned for an attack outside the current legal set,
	// including unparseable input.
	ErrIllegalMove = errors.New("illegal move")
	// ErrAlreadyFinished is returned when a move or search is attempted on a
	// finished game.
	ErrAlreadyFinished = errors.New("game already finished")
	// ErrNoMoveAvailable signals that no move could be chosen; callers fall
	// back to a random legal move.
	ErrNoMoveAvailable = errors.New("no move available")
)
