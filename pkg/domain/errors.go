package domain

import "errors"

// ErrExhausted is returned when the generator discards too many candidates
// before the success quota is reached. It signals a harness configuration
// problem (the vocabulary skews too invalid), not a correctness bug.
var ErrExhausted = errors.New("generator exhausted: too many discarded candidates")

// ErrFailureNotFound is returned when a failure ID cannot be found in the store.
var ErrFailureNotFound = errors.New("failure not found")
