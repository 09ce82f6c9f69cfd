package store

import "errors"

var (
	// ErrNotFound marks a lookup by id that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyCheckedIn marks a check-in while an open time log already
	// exists for the user today.
	ErrAlreadyCheckedIn = errors.New("already checked in")

	// ErrNotCheckedIn marks a ledger operation that requires an open time
	// log when none exists.
	ErrNotCheckedIn = errors.New("not checked in")

	// ErrPersistence marks a failed blob read or write. Writes that fail
	// never roll back the in-memory mutation; the failure is surfaced as a
	// warning instead.
	ErrPersistence = errors.New("persistence failed")
)
