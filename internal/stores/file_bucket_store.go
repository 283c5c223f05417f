package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/filestorages"
)

// fileBucketStore keeps one JSON document per bucket:
//
//	buckets/<account>/<kind>/<granularityMinutes>/<bucketStart>.json
//
// The bucket start in the file name lets a fetch skip reading buckets outside the range.
type fileBucketStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewFileBucketStore(fileStorage filestorages.FileStorage) BucketStore {
	return &fileBucketStore{fileStorage: fileStorage, dir: "buckets"}
}

func (s *fileBucketStore) FetchBuckets(ctx context.Context, accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) ([]models.MetricBucket, error) {
	var buckets []models.MetricBucket
	for _, granularity := range models.GranularitiesDescending() {
		prefix, err := s.getPrefix(accountID, kind, granularity)
		if err != nil {
			return nil, err
		}
		keys, err := s.fileStorage.List(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list buckets: %w", err)
		}

		for _, key := range keys {
			start, err := granularity.ParseBucketStart(strings.TrimSuffix(path.Base(key), ".json"))
			if err != nil {
				continue
			}
			if !overlaps(start, start.Add(granularity.Duration()), rangeStart, rangeEnd) {
				continue
			}
			bucket, err := s.read(ctx, key)
			if err != nil {
				return nil, err
			}
			buckets = append(buckets, *bucket)
		}
	}
	return buckets, nil
}

func (s *fileBucketStore) GetBucket(ctx context.Context, accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (*models.MetricBucket, error) {
	key, err := s.getKey(accountID, kind, granularity, start)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, key)
}

func (s *fileBucketStore) UpsertBucket(ctx context.Context, bucket *models.MetricBucket) error {
	key, err := s.getKey(bucket.AccountID, bucket.RecordKind, bucket.Granularity, bucket.TimeRangeStart)
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put bucket: %w", err)
	}
	return nil
}

func (s *fileBucketStore) Close() error {
	return nil
}

func (s *fileBucketStore) read(ctx context.Context, key string) (*models.MetricBucket, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrBucketNotFound
		}
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read bucket: %w", err)
	}
	var bucket models.MetricBucket
	if err := json.Unmarshal(data, &bucket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bucket %s: %w", key, err)
	}
	return &bucket, nil
}

func (s *fileBucketStore) getPrefix(accountID string, kind models.RecordKind, granularity models.Granularity) (string, error) {
	if !granularity.IsValid() {
		return "", fmt.Errorf("%w: %d", models.ErrUnknownGranularity, uint8(granularity))
	}
	account, err := pathSegment(accountID)
	if err != nil {
		return "", err
	}
	recordKind, err := pathSegment(string(kind))
	if err != nil {
		return "", err
	}
	return path.Join(s.dir, account, recordKind, strconv.Itoa(granularity.Minutes())), nil
}

func (s *fileBucketStore) getKey(accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (string, error) {
	prefix, err := s.getPrefix(accountID, kind, granularity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s.json", prefix, granularity.FormatBucketStart(start)), nil
}
