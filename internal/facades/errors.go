package facades

import (
	"fmt"

	"bucket-metrics/internal/shared/svcerrors"
)

// MetricsFacade errors
const (
	codeInvalidLoadRequest = "FAC_1000"

	codeInternalLoadFailed = "FAC_9000"
)

// errInvalidLoadRequest returns an error when a load names no account or no kind.
func errInvalidLoadRequest() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidLoadRequest, "accountID and recordKind are required", nil)
}

// errInternalLoadFailed returns an error for load failures that carry no service error.
func errInternalLoadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLoadFailed, fmt.Errorf("loadFailed: %w", cause))
}
