package models

// HourlyRate is an aggregation result scaled to a 60 minute span.
//
// NoData distinguishes "nothing covered" from "covered, and the rate is zero": both carry
// Count == 0, but only the former means the value is unknown.
type HourlyRate struct {
	Count          int64   `json:"count"`
	CountExact     float64 `json:"countExact"`
	Cost           float64 `json:"cost"`
	CoveredMinutes float64 `json:"coveredMinutes"`
	NoData         bool    `json:"noData"`
}
