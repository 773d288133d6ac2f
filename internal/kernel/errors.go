package kernel

import (
	"errors"

	"intrsim/internal/memory"
)

// Every error the engine returns wraps one of these. All of them abort the run.
var (
	ErrMalformedDirective     = errors.New("malformed directive")
	ErrInvalidInterruptNumber = errors.New("invalid interrupt number")
	ErrInvalidDeviceNumber    = errors.New("invalid device number")
	ErrProgramNotFound        = errors.New("program not found")
	ErrUnbalancedForkBracket  = errors.New("unbalanced fork bracket")

	// ErrMemoryExhausted is memory.ErrMemoryExhausted, re-exported for callers
	// that only import kernel.
	ErrMemoryExhausted = memory.ErrMemoryExhausted
)
