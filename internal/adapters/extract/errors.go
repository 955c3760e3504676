package extract

import "errors"

// Sentinel kinds for extract errors.
var (
	ErrExtractNotFound = errors.New("extract not found")
	ErrReadExtract     = errors.New("read extract failed")
	ErrMissingColumn   = errors.New("extract column missing")
)
