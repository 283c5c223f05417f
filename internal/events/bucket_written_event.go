package events

import (
	"time"

	"bucket-metrics/internal/models"
)

// BucketWrittenEvent carries one bucket accepted by intake to the writer that applies it to the
// bucket store. Events are partitioned by the bucket's series key, so every write to one
// (account, kind, granularity) series is applied by the same worker, in order.
//
// Example JSON:
//
//	{
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "acceptedAt": "2025-12-28T14:31:07Z",
//	  "bucket": {
//	    "accountId": "acc-7f3a",
//	    "recordKind": "items",
//	    "timeRangeStart": "2025-12-28T14:00:00Z",
//	    "timeRangeEnd": "2025-12-28T15:00:00Z",
//	    "granularityMinutes": 60,
//	    "count": 75,
//	    "complete": false
//	  }
//	}
//
// Here the writer delivers the still-open 14:00 hour bucket; a later event for the same start
// with complete=true finalizes it.
type BucketWrittenEvent struct {
	BatchID    string              `json:"batchId"`
	AcceptedAt time.Time           `json:"acceptedAt"`
	Bucket     models.MetricBucket `json:"bucket"`
}

// PartitionKey routes all writes of one bucket series to the same partition.
func (e *BucketWrittenEvent) PartitionKey() string {
	return e.Bucket.SeriesKey()
}
