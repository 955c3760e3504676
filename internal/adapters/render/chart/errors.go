package chart

import "errors"

// Sentinel kinds for chart errors.
var (
	ErrUnknownChart   = errors.New("unknown chart")
	ErrSectionMissing = errors.New("report section not rendered")
	ErrDraw           = errors.New("draw chart failed")
)
