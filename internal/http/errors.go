package http

import (
	"fmt"

	"bucket-metrics/internal/shared/svcerrors"
)

const (
	codeInvalidQueryParam = "HTTP_1000"
	codeInvalidPathParam  = "HTTP_1001"
)

// errInvalidQueryParam returns an error when a query parameter is missing or malformed.
func errInvalidQueryParam(name, reason string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, fmt.Sprintf("query parameter %q %s", name, reason), cause)
}

// errInvalidPathParam returns an error when a path segment is empty.
func errInvalidPathParam(name string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidPathParam, fmt.Sprintf("path parameter %q is required", name), nil)
}
