package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define the deterministic bucket layout and must match expected results.
// DO NOT MODIFY: Changing these will break the expected aggregates below.
const (
	hourlyHours     = 13 // complete hourly buckets for 00:00..12:00, count = 100 + hour
	quarterCount    = 15 // count of each complete 15m bucket in 13:00..14:00
	openHourCount   = 30 // count of the still-open 14:00 hourly bucket
	bucketsPerBatch = 20
)

const (
	expectedWindowCount    = 112 + 4*quarterCount + openHourCount // [12:00, 14:30)
	expectedHourCount      = 4 * quarterCount                     // [13:00, 14:00)
	expectedSeriesPoints   = 15                                   // [00:00, 14:30) hourly, last clipped
	expectedSeriesTotal    = 1378 + 4*quarterCount + openHourCount
	expectedSeriesComplete = 14
)

// ### End - fixed configs

type metricBucket struct {
	AccountID          string    `json:"accountId"`
	RecordKind         string    `json:"recordKind"`
	TimeRangeStart     time.Time `json:"timeRangeStart"`
	TimeRangeEnd       time.Time `json:"timeRangeEnd"`
	GranularityMinutes int       `json:"granularityMinutes"`
	Count              int64     `json:"count"`
	Cost               float64   `json:"cost"`
	Complete           bool      `json:"complete"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type aggregateResponse struct {
	Result struct {
		Count      int64 `json:"count"`
		IsComplete bool  `json:"isComplete"`
	} `json:"result"`
	HourlyRate struct {
		Count  int64 `json:"count"`
		NoData bool  `json:"noData"`
	} `json:"hourlyRate"`
}

type seriesResponse struct {
	Points  []json.RawMessage `json:"points"`
	Summary struct {
		Total          float64 `json:"total"`
		CompletePoints int     `json:"completePoints"`
	} `json:"summary"`
}

// main runs the e2e scenario: 001_mixed_granularity_rollup
//
// This scenario plays the external rollup writer: it posts hourly, quarter-hour and minute
// buckets for one account, then queries windows that need a mixed-granularity cover.
//
// What it tests:
//   - Bucket intake via POST /v1/buckets, idempotency keys and 409 on duplicate batches
//   - Asynchronous application of buckets by the partitioned single-writer consumer
//   - Cover planning: coarser buckets win, minute buckets under a quarter-hour are skipped
//   - A trailing open bucket is used for the current hour and marks the result partial
//   - Series generation over 24h sub-intervals with an ordered summary
//
// Expected results:
//   - Every original batch is accepted (202) and every duplicate conflicts (409)
//   - [12:00, 14:30) aggregates to expectedWindowCount and is partial
//   - [13:00, 14:00) aggregates to expectedHourCount and is complete
//   - [00:00, 14:30) at 60m yields expectedSeriesPoints points, expectedSeriesComplete complete
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the bucket metrics API server
	dateUTC := "2025-12-28"            // Day the buckets are written for (UTC)
	parallel := 2                      // Number of concurrent batch requests to send
	duplicatesPerBatch := 1            // Times every batch is re-sent with the same idempotency key
	accountID := "acc-axon"            // Account ID to use in requests
	recordKind := "items"              // Record kind to use in requests
	settleTime := 2 * time.Second      // Time given to the consumer to apply queued buckets

	day, err := time.Parse("2006-01-02", dateUTC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid dateUTC %q: %v\n", dateUTC, err)
		os.Exit(1)
	}

	fmt.Println("Starting e2e scenario: 001_mixed_granularity_rollup")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("DUPLICATES_PER_BATCH: %d\n", duplicatesPerBatch)
	fmt.Println()

	buckets := generateBuckets(day, accountID, recordKind)
	batchesToSend, err := generateBatches(buckets, duplicatesPerBatch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to generate batches: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d buckets in %d batches (including duplicates)\n", len(buckets), len(batchesToSend))
	fmt.Println()

	// Originals first so duplicates always find their batch recorded
	var conflictedRequest int64 // 409 status code
	var acceptedRequest int64   // 202 status code
	var failed int64
	for _, onlyOriginals := range []bool{true, false} {
		workerChan := make(chan struct{}, parallel)
		var wg sync.WaitGroup
		for _, batch := range batchesToSend {
			if batch.isOriginal != onlyOriginals {
				continue
			}
			wg.Add(1)
			workerChan <- struct{}{}

			go func(b batchToSend) {
				defer wg.Done()
				defer func() { <-workerChan }()

				statusCode, err := sendBatch(baseURL, accountID, b)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: Batch %d failed: %v\n", b.batchIndex, err)
					return
				}
				switch statusCode {
				case http.StatusAccepted:
					atomic.AddInt64(&acceptedRequest, 1)
				case http.StatusConflict:
					atomic.AddInt64(&conflictedRequest, 1)
				}
			}(batch)
		}
		wg.Wait()
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d batch sends failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("=== Intake ===")
	fmt.Printf("Accepted request: %d\n", acceptedRequest)
	fmt.Printf("Conflicted request: %d\n", conflictedRequest)
	fmt.Println()

	fmt.Printf("Waiting %s for buckets to be applied...\n", settleTime)
	time.Sleep(settleTime)

	prefix := fmt.Sprintf("%s/v1/accounts/%s/kinds/%s", baseURL, accountID, recordKind)
	at := func(hour, minute int) string {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).Format(time.RFC3339)
	}

	var mismatches []string
	check := func(name string, got, want any) {
		if fmt.Sprint(got) != fmt.Sprint(want) {
			mismatches = append(mismatches, fmt.Sprintf("%s: got %v, want %v", name, got, want))
		}
	}

	var partial aggregateResponse
	if err := getJSON(fmt.Sprintf("%s/aggregate?start=%s&end=%s", prefix, at(12, 0), at(14, 30)), &partial); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: aggregate query failed: %v\n", err)
		os.Exit(1)
	}
	check("window count", partial.Result.Count, expectedWindowCount)
	check("window complete", partial.Result.IsComplete, false)

	var hour aggregateResponse
	if err := getJSON(fmt.Sprintf("%s/aggregate?start=%s&end=%s", prefix, at(13, 0), at(14, 0)), &hour); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: aggregate query failed: %v\n", err)
		os.Exit(1)
	}
	check("hour count", hour.Result.Count, expectedHourCount)
	check("hour complete", hour.Result.IsComplete, true)
	check("hour rate", hour.HourlyRate.Count, expectedHourCount)

	var series seriesResponse
	if err := getJSON(fmt.Sprintf("%s/series?start=%s&end=%s&interval=60", prefix, at(0, 0), at(14, 30)), &series); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: series query failed: %v\n", err)
		os.Exit(1)
	}
	check("series points", len(series.Points), expectedSeriesPoints)
	check("series total", series.Summary.Total, expectedSeriesTotal)
	check("series complete points", series.Summary.CompletePoints, expectedSeriesComplete)

	fmt.Println("=== Queries ===")
	fmt.Printf("[12:00, 14:30) count=%d complete=%t\n", partial.Result.Count, partial.Result.IsComplete)
	fmt.Printf("[13:00, 14:00) count=%d complete=%t rate=%d/h\n", hour.Result.Count, hour.Result.IsComplete, hour.HourlyRate.Count)
	fmt.Printf("series points=%d total=%.0f complete=%d\n", len(series.Points), series.Summary.Total, series.Summary.CompletePoints)

	if len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", m)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func generateBuckets(day time.Time, accountID, recordKind string) []metricBucket {
	bucket := func(start time.Time, minutes int, count int64, complete bool) metricBucket {
		return metricBucket{
			AccountID:          accountID,
			RecordKind:         recordKind,
			TimeRangeStart:     start,
			TimeRangeEnd:       start.Add(time.Duration(minutes) * time.Minute),
			GranularityMinutes: minutes,
			Count:              count,
			Cost:               float64(count) / 100,
			Complete:           complete,
		}
	}

	var buckets []metricBucket
	for h := 0; h < hourlyHours; h++ {
		buckets = append(buckets, bucket(day.Add(time.Duration(h)*time.Hour), 60, int64(100+h), true))
	}
	thirteen := day.Add(13 * time.Hour)
	for q := 0; q < 4; q++ {
		buckets = append(buckets, bucket(thirteen.Add(time.Duration(q)*15*time.Minute), 15, quarterCount, true))
	}
	// finer buckets for the same hour; the cover must prefer the quarters
	for m := 0; m < 60; m++ {
		buckets = append(buckets, bucket(thirteen.Add(time.Duration(m)*time.Minute), 1, 1, true))
	}
	buckets = append(buckets, bucket(day.Add(14*time.Hour), 60, openHourCount, false))
	return buckets
}

func generateBatches(buckets []metricBucket, duplicatesPerBatch int) ([]batchToSend, error) {
	var batches []batchToSend
	for start, batchIndex := 0, 1; start < len(buckets); start, batchIndex = start+bucketsPerBatch, batchIndex+1 {
		end := min(start+bucketsPerBatch, len(buckets))
		jsonData, err := json.Marshal(buckets[start:end])
		if err != nil {
			return nil, err
		}
		batches = append(batches, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
		for d := 0; d < duplicatesPerBatch; d++ {
			batches = append(batches, batchToSend{batchIndex: batchIndex, jsonData: jsonData})
		}
	}
	return batches, nil
}

func sendBatch(baseURL, accountID string, batch batchToSend) (int, error) {
	// Same key for all duplicates of this batch
	idempotencyKey := fmt.Sprintf("batch-%06d", batch.batchIndex)

	req, err := http.NewRequest("POST", baseURL+"/v1/buckets", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-account-id", accountID)
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected for duplicates
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return resp.StatusCode, nil
}

func getJSON(url string, out any) error {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
