package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bucket-metrics/internal/models"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// sqliteBucketStore keeps buckets in one table keyed by series and start. Instants are stored as
// unix nanoseconds so range predicates compare integers.
type sqliteBucketStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS metric_buckets (
	account_id TEXT NOT NULL,
	record_kind TEXT NOT NULL,
	granularity_minutes INTEGER NOT NULL,
	time_range_start INTEGER NOT NULL,
	time_range_end INTEGER NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	cost REAL NOT NULL DEFAULT 0,
	decision_count INTEGER NOT NULL DEFAULT 0,
	external_api_count INTEGER NOT NULL DEFAULT 0,
	cached_api_count INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	complete INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (account_id, record_kind, granularity_minutes, time_range_start)
);
CREATE INDEX IF NOT EXISTS idx_metric_buckets_range ON metric_buckets(account_id, record_kind, time_range_start, time_range_end);
`

const sqliteBucketColumns = `account_id, record_kind, granularity_minutes, time_range_start, time_range_end,
	count, cost, decision_count, external_api_count, cached_api_count, error_count, complete`

func NewSqliteBucketStore(path string) (BucketStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &sqliteBucketStore{db: db}, nil
}

func (s *sqliteBucketStore) FetchBuckets(ctx context.Context, accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) ([]models.MetricBucket, error) {
	query := `SELECT ` + sqliteBucketColumns + `
		FROM metric_buckets
		WHERE account_id = ? AND record_kind = ? AND time_range_start < ? AND time_range_end > ?
		ORDER BY granularity_minutes DESC, time_range_start ASC`

	rows, err := s.db.QueryContext(ctx, query, accountID, string(kind), rangeEnd.UnixNano(), rangeStart.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query buckets: %w", err)
	}
	defer rows.Close()

	var buckets []models.MetricBucket
	for rows.Next() {
		bucket, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, *bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}
	return buckets, nil
}

func (s *sqliteBucketStore) GetBucket(ctx context.Context, accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (*models.MetricBucket, error) {
	if !granularity.IsValid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownGranularity, uint8(granularity))
	}
	query := `SELECT ` + sqliteBucketColumns + `
		FROM metric_buckets
		WHERE account_id = ? AND record_kind = ? AND granularity_minutes = ? AND time_range_start = ?`

	row := s.db.QueryRowContext(ctx, query, accountID, string(kind), granularity.Minutes(), start.UnixNano())
	bucket, err := scanBucket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBucketNotFound
	}
	if err != nil {
		return nil, err
	}
	return bucket, nil
}

func (s *sqliteBucketStore) UpsertBucket(ctx context.Context, bucket *models.MetricBucket) error {
	if !bucket.Granularity.IsValid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownGranularity, uint8(bucket.Granularity))
	}
	query := `INSERT INTO metric_buckets (` + sqliteBucketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, record_kind, granularity_minutes, time_range_start) DO UPDATE SET
			time_range_end = excluded.time_range_end,
			count = excluded.count,
			cost = excluded.cost,
			decision_count = excluded.decision_count,
			external_api_count = excluded.external_api_count,
			cached_api_count = excluded.cached_api_count,
			error_count = excluded.error_count,
			complete = excluded.complete,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query,
		bucket.AccountID,
		string(bucket.RecordKind),
		bucket.Granularity.Minutes(),
		bucket.TimeRangeStart.UnixNano(),
		bucket.TimeRangeEnd.UnixNano(),
		bucket.Count,
		bucket.Cost,
		bucket.DecisionCount,
		bucket.ExternalAPICount,
		bucket.CachedAPICount,
		bucket.ErrorCount,
		bucket.Complete,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bucket: %w", err)
	}
	return nil
}

func (s *sqliteBucketStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBucket reads one row in sqliteBucketColumns order. A granularity outside the known set
// is kept as an invalid value so the planner can reject the bucket.
func scanBucket(row rowScanner) (*models.MetricBucket, error) {
	var (
		bucket             models.MetricBucket
		kind               string
		granularityMinutes int
		startNanos         int64
		endNanos           int64
	)
	err := row.Scan(
		&bucket.AccountID,
		&kind,
		&granularityMinutes,
		&startNanos,
		&endNanos,
		&bucket.Count,
		&bucket.Cost,
		&bucket.DecisionCount,
		&bucket.ExternalAPICount,
		&bucket.CachedAPICount,
		&bucket.ErrorCount,
		&bucket.Complete,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bucket: %w", err)
	}

	bucket.RecordKind = models.RecordKind(kind)
	bucket.TimeRangeStart = time.Unix(0, startNanos).UTC()
	bucket.TimeRangeEnd = time.Unix(0, endNanos).UTC()
	if granularity, err := models.GranularityFromMinutes(granularityMinutes); err == nil {
		bucket.Granularity = granularity
	}
	return &bucket, nil
}
