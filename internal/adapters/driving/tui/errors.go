package tui

import "errors"

// ErrMissingValidator is returned when the validator is not provided.
var ErrMissingValidator = errors.New("tui: validator is required")
