package stores

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bucket-metrics/internal/models"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// BadgerConfig holds badger backend configuration.
type BadgerConfig struct {
	// Path to store database files
	Path string

	// InMemory mode (for tests and throwaway runs)
	InMemory bool

	// MaxMemoryMB limits badger memory usage in MB (0 = 48 MB total)
	MaxMemoryMB int64
}

// badgerBucketStore keys every bucket as
//
//	xxhash(account|kind) [8] | granularity [1] | start unix nanos, sign-flipped big endian [8]
//
// so one (account, kind, granularity) series is a contiguous, time-ordered key range.
type badgerBucketStore struct {
	db *badger.DB
}

const badgerKeyLen = 8 + 1 + 8

func NewBadgerBucketStore(cfg BadgerConfig) (BucketStore, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	// 16 MB memtable is the floor below which flushes dominate
	memTableSize := int64(16 * 1024 * 1024)
	if cfg.MaxMemoryMB > 0 {
		memTableSize = cfg.MaxMemoryMB * 1024 * 1024 / 3
	}

	// buckets are small, rewritten at most until complete, never versioned
	opts = opts.
		WithCompression(options.Snappy).
		WithNumVersionsToKeep(1).
		WithMemTableSize(memTableSize).
		WithNumMemtables(3).
		WithBlockCacheSize(memTableSize / 2).
		WithIndexCacheSize(memTableSize / 4).
		WithMaxLevels(4).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithValueThreshold(1024).
		WithNumCompactors(2).
		WithValueLogFileSize(64 << 20)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &badgerBucketStore{db: db}, nil
}

func (s *badgerBucketStore) FetchBuckets(ctx context.Context, accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) ([]models.MetricBucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type fetchResult struct {
		buckets []models.MetricBucket
		err     error
	}
	done := make(chan fetchResult, 1)

	go func() {
		var res fetchResult
		res.err = s.db.View(func(txn *badger.Txn) error {
			for _, granularity := range models.GranularitiesDescending() {
				prefix := seriesPrefix(accountID, kind, granularity)
				opts := badger.DefaultIteratorOptions
				opts.Prefix = prefix
				opts.PrefetchSize = 64

				it := txn.NewIterator(opts)
				// a bucket overlaps the range only if it starts after rangeStart-width
				seek := makeBucketKey(prefix, rangeStart.Add(-granularity.Duration()))
				for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
					if err := ctx.Err(); err != nil {
						it.Close()
						return err
					}
					if !parseBucketKeyStart(it.Item().Key()).Before(rangeEnd) {
						break
					}

					var bucket models.MetricBucket
					if err := it.Item().Value(func(val []byte) error {
						return json.Unmarshal(val, &bucket)
					}); err != nil {
						it.Close()
						return fmt.Errorf("failed to decode bucket: %w", err)
					}
					// hash collisions across accounts are resolved on the stored identity
					if bucket.AccountID != accountID || bucket.RecordKind != kind {
						continue
					}
					if overlaps(bucket.TimeRangeStart, bucket.TimeRangeEnd, rangeStart, rangeEnd) {
						res.buckets = append(res.buckets, bucket)
					}
				}
				it.Close()
			}
			return nil
		})
		done <- res
	}()

	select {
	case res := <-done:
		return res.buckets, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch buckets cancelled: %w", ctx.Err())
	}
}

func (s *badgerBucketStore) GetBucket(ctx context.Context, accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (*models.MetricBucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !granularity.IsValid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownGranularity, uint8(granularity))
	}

	var bucket models.MetricBucket
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeBucketKey(seriesPrefix(accountID, kind, granularity), start))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &bucket)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBucketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	if bucket.AccountID != accountID || bucket.RecordKind != kind {
		return nil, ErrBucketNotFound
	}
	return &bucket, nil
}

func (s *badgerBucketStore) UpsertBucket(ctx context.Context, bucket *models.MetricBucket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !bucket.Granularity.IsValid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownGranularity, uint8(bucket.Granularity))
	}
	value, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket: %w", err)
	}
	key := makeBucketKey(seriesPrefix(bucket.AccountID, bucket.RecordKind, bucket.Granularity), bucket.TimeRangeStart)

	done := make(chan error, 1)
	go func() {
		done <- s.db.Update(func(txn *badger.Txn) error {
			return txn.Set(key, value)
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to write bucket: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("upsert bucket cancelled: %w", ctx.Err())
	}
}

// Close shuts down badger cleanly.
func (s *badgerBucketStore) Close() error {
	return s.db.Close()
}

func seriesPrefix(accountID string, kind models.RecordKind, granularity models.Granularity) []byte {
	prefix := make([]byte, 9)
	binary.BigEndian.PutUint64(prefix, xxhash.Sum64String(accountID+"|"+string(kind)))
	prefix[8] = byte(granularity)
	return prefix
}

func makeBucketKey(prefix []byte, start time.Time) []byte {
	key := make([]byte, badgerKeyLen)
	copy(key, prefix)
	// flipping the sign bit keeps pre-1970 instants ordered before later ones
	binary.BigEndian.PutUint64(key[9:], uint64(start.UnixNano())^(1<<63))
	return key
}

func parseBucketKeyStart(key []byte) time.Time {
	if len(key) != badgerKeyLen {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(key[9:])^(1<<63))).UTC()
}
