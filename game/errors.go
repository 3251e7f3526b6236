package game

import "errors"

var (
	ErrInsufficientIP     = errors.New("insufficient IP")
	ErrOutOfBounds        = errors.New("invalid coordinates")
	ErrCellOccupied       = errors.New("cell occupied")
	ErrValueOutOfRange    = errors.New("value out of range")
	ErrNoAdjacentOccupant = errors.New("no adjacent occupant in that direction")
	ErrUnknownAction      = errors.New("unknown action type")
	ErrRejected           = errors.New("invalid action")
	ErrMalformedState     = errors.New("malformed state")
)
