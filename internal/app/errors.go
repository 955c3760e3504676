package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrUnknownBandSet = errors.New("unknown band set")
	ErrLoadExtract    = errors.New("load extract failed")
)
