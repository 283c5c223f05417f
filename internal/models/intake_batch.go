package models

import "time"

// IntakeBatch is one delivery of buckets from the external rollup writer. It is recorded once
// per batch id so a retried delivery is detected instead of re-applied.
type IntakeBatch struct {
	BatchID    string         `json:"batchId"`
	AccountID  string         `json:"accountId"`
	ReceivedAt time.Time      `json:"receivedAt"`
	Buckets    []MetricBucket `json:"buckets"`
}
