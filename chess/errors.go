package chess

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrIllegalPath       = errors.New("cannot move there")
	ErrIllegalMove       = errors.New("move not allowed")
)
