package charts

import (
	"fmt"

	"bucket-metrics/internal/shared/svcerrors"
)

// SeriesGenerator errors
const (
	codeInvalidSeriesRequest = "SER_1000"
	codeTooManyPoints        = "SER_1001"

	codeInternalUndefined = "SER_9000"
)

// errInvalidSeriesRequest returns an error for malformed series requests.
func errInvalidSeriesRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSeriesRequest, msg, cause)
}

// errTooManyPoints returns an error when the window and interval would yield too many points.
func errTooManyPoints(points, max int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeTooManyPoints,
		fmt.Sprintf("series would have %d points, must be <= %d", points, max), nil)
}
