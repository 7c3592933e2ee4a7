package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoActiveSession  = errors.New("no active session")
	ErrCapacityExceeded = errors.New("record capacity exceeded")
	ErrNoPriorSession   = errors.New("no prior session")
	ErrCorruptState     = errors.New("corrupt persisted state")
)
