package object

import "errors"

var (
	ErrNoScene           = errors.New("object: objects collection requires an enclosing scene")
	ErrNoRenderer        = errors.New("object: no renderer to draw with")
	ErrUnknownShape      = errors.New("object: unknown shape kind")
	ErrInvalidSize       = errors.New("object: size must be positive")
	ErrNotRegistered     = errors.New("object: object is not registered with a collection")
	ErrAlreadyRegistered = errors.New("object: object is already registered")
	ErrNotFound          = errors.New("object: object not found in collection")
	ErrIndexOutOfRange   = errors.New("object: index out of range")
	ErrSpaceLocked       = errors.New("object: physics space is locked during a step")
	ErrNilObject         = errors.New("object: object is nil")
)
