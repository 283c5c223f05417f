package aggregators

import (
	"fmt"

	"bucket-metrics/internal/models"
)

//go:generate mockgen -source=bucket_aggregator.go -destination=./mocks/bucket_aggregator_mock.go -package=mocks
type BucketAggregator interface {
	// Aggregate sums every numeric field across the cover's buckets. Gaps contribute nothing;
	// completeness is taken from the cover as-is.
	Aggregate(cover *models.Cover) (*models.AggregationResult, error)
}

type bucketAggregator struct{}

func NewBucketAggregator() BucketAggregator {
	return &bucketAggregator{}
}

func (a *bucketAggregator) Aggregate(cover *models.Cover) (*models.AggregationResult, error) {
	result := &models.AggregationResult{
		Window:       cover.Window,
		CoveredStart: cover.CoveredStart,
		CoveredEnd:   cover.CoveredEnd,
		IsComplete:   cover.IsComplete,
		BucketsUsed:  len(cover.Buckets),
		Gaps:         len(cover.Gaps),
	}

	for i := range cover.Buckets {
		bucket := &cover.Buckets[i]

		// a cover never mixes series
		if i == 0 {
			result.AccountID = bucket.AccountID
			result.RecordKind = bucket.RecordKind
		} else {
			if bucket.AccountID != result.AccountID {
				return nil, fmt.Errorf("accountID mismatch: result=%q, bucket=%q", result.AccountID, bucket.AccountID)
			}
			if bucket.RecordKind != result.RecordKind {
				return nil, fmt.Errorf("recordKind mismatch: result=%q, bucket=%q", result.RecordKind, bucket.RecordKind)
			}
		}

		result.Add(bucket.Sums())
	}

	return result, nil
}
