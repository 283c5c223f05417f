package models

import (
	"slices"
	"time"
)

// MetricsView is what dashboards render for one (account, kind): the last-hour gauge and the
// last-24-hour chart. It is rebuilt from scratch on every refresh.
//
// Example JSON:
//
//	{
//	  "accountId": "acc-7f3a",
//	  "recordKind": "items",
//	  "perHourRate": 175,
//	  "perHourCost": 0.81,
//	  "hasHourlyData": true,
//	  "averagePerHour": 142.5,
//	  "peakHourly": 310,
//	  "total24h": 3420,
//	  "chartSeries": [{"time": "2025-12-27T15:00:00Z", "value": 120, ...}],
//	  "lastUpdated": "2025-12-28T14:31:07Z",
//	  "isComplete": false
//	}
type MetricsView struct {
	AccountID      string       `json:"accountId"`
	RecordKind     RecordKind   `json:"recordKind"`
	PerHourRate    int64        `json:"perHourRate"`
	PerHourCost    float64      `json:"perHourCost"`
	HasHourlyData  bool         `json:"hasHourlyData"`
	AveragePerHour float64      `json:"averagePerHour"`
	PeakHourly     float64      `json:"peakHourly"`
	Total24h       int64        `json:"total24h"`
	ChartSeries    []ChartPoint `json:"chartSeries"`
	LastUpdated    time.Time    `json:"lastUpdated"`
	IsComplete     bool         `json:"isComplete"`
}

// Clone returns a copy that shares no slices with v.
func (v *MetricsView) Clone() *MetricsView {
	clone := *v
	clone.ChartSeries = slices.Clone(v.ChartSeries)
	return &clone
}
