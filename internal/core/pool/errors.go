package pool

import "errors"

var (
	// ErrPoolExhausted is returned by Create when a capped factory has no free
	// instance and its exhaust policy is PolicyFail.
	ErrPoolExhausted = errors.New("pool exhausted")
	// ErrDoubleRelease is returned when releasing an instance that is already pooled.
	ErrDoubleRelease = errors.New("instance already released")
	// ErrForeignEntity is returned when releasing an instance the factory never built.
	ErrForeignEntity = errors.New("instance not owned by factory")
	// ErrFactoryClosed is returned by every operation after Close.
	ErrFactoryClosed = errors.New("factory is closed")
	// ErrInvalidOption is returned by New for a bad constructor or option value.
	ErrInvalidOption = errors.New("invalid factory option")
)
