package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCorpus indicates the corpus root contained no readable
	// documentation files. This is the one fatal validation condition;
	// every other failure degrades to a recorded finding.
	ErrEmptyCorpus = errors.New("no readable documentation files in corpus")

	// ErrNoRun indicates no validation run has been recorded yet.
	ErrNoRun = errors.New("no validation run recorded")
)
