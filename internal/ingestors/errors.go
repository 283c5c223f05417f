package ingestors

import (
	"fmt"

	"bucket-metrics/internal/shared/svcerrors"
)

// BucketIntakeService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"

	codeInternalIntakeBatchStoreFailed     = "ING_9000"
	codeInternalBucketEventPublisherFailed = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errIntakeBatchAlreadyProcessed returns an error when an intake batch has already been processed.
func errIntakeBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "bucket batch already processed", cause)
}

// errInternalIntakeBatchStoreFailed returns an error when an intake batch store operation fails.
func errInternalIntakeBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalIntakeBatchStoreFailed, fmt.Errorf("intakeBatchStoreFailed: %w", cause))
}

// errInternalBucketEventPublisherFailed returns an error when publishing bucket events fails.
func errInternalBucketEventPublisherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalBucketEventPublisherFailed, fmt.Errorf("bucketEventPublisherFailed: %w", cause))
}
