package samplegen

import "errors"

// Sentinel errors for sample runs.
var (
	ErrWrite       = errors.New("write extracts failed")
	ErrUnhealthy   = errors.New("service health check failed")
	ErrRequest     = errors.New("request failed")
	ErrMismatch    = errors.New("band summary mismatch")
	ErrNotConserve = errors.New("band totals do not sum to in-domain orders")
)
