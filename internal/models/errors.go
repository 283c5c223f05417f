package models

import "errors"

var (
	ErrUnknownGranularity  = errors.New("unknown granularity")
	ErrInvalidTimeRange    = errors.New("bucket time range end must be after start")
	ErrGranularityMismatch = errors.New("bucket width does not match its granularity")
	ErrMissingIdentity     = errors.New("bucket account id and record kind are required")
	ErrNegativeCount       = errors.New("bucket sums must not be negative")
	ErrInvalidWindow       = errors.New("window end must not be before start")
)
