package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInconsistentRange = errors.New("inconsistent index range")
	ErrUnknownTokenizer  = errors.New("unknown tokenizer")
	ErrUnknownMatcher    = errors.New("unknown word matcher")
)
