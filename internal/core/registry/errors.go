package registry

import "errors"

var (
	// ErrUnknownKind is returned for a kind with no registered factory.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrKindMismatch is returned when a kind is used with entity or config
	// types other than the ones it was registered with.
	ErrKindMismatch = errors.New("kind type mismatch")
	// ErrInvalidKind is returned when registering an empty kind name or a nil factory.
	ErrInvalidKind = errors.New("invalid kind registration")
)
