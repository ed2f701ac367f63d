package errno

import (
	"errors"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrDuplicateID   = errors.New("duplicate agent id")
	ErrInvalidAgent  = errors.New("invalid agent")
)
