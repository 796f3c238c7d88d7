package services

import "errors"

// Error taxonomy surfaced by the services. Handlers map these onto HTTP
// statuses; none of them is ever swallowed into a silent no-op.
var (
	// ErrNotFound: the referenced entity is absent or not visible in scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState: the operation is illegal for the current lifecycle
	// state (wrong order status, empty order at checkout, quantity < 1).
	ErrInvalidState = errors.New("invalid state")

	// ErrTransient: a storage timeout or write conflict; the caller may retry.
	ErrTransient = errors.New("transient storage failure")
)
