package stores

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"bucket-metrics/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	cacheResultHit    = "hit"
	cacheResultMiss   = "miss"
	cacheResultShared = "shared"
)

// cachingBucketStore de-duplicates concurrent identical fetches and remembers fetch results made
// only of complete buckets. Results holding an incomplete bucket are never cached since that
// bucket is still changing. Writes drop every cached range of the written series and bump the
// series generation; a fetch that started under an older generation returns its result but does
// not cache it.
type cachingBucketStore struct {
	next  BucketStore
	cache *expirable.LRU[string, []models.MetricBucket]
	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCachingBucketStore(next BucketStore, size int, ttl time.Duration) BucketStore {
	return &cachingBucketStore{
		next:        next,
		cache:       expirable.NewLRU[string, []models.MetricBucket](size, nil, ttl),
		generations: make(map[string]uint64),
	}
}

func (s *cachingBucketStore) FetchBuckets(ctx context.Context, accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) ([]models.MetricBucket, error) {
	series := seriesCachePrefix(accountID, kind)
	key := cacheKey(accountID, kind, rangeStart, rangeEnd)
	if buckets, ok := s.cache.Get(key); ok {
		metricBucketCacheRequestsTotal.WithLabelValues(cacheResultHit).Inc()
		return slices.Clone(buckets), nil
	}

	// the shared fetch must not die with whichever caller started it
	fetchCtx := context.WithoutCancel(ctx)
	cancel := context.CancelFunc(func() {})
	if deadline, ok := ctx.Deadline(); ok {
		fetchCtx, cancel = context.WithDeadline(fetchCtx, deadline)
	}

	resultCh := s.group.DoChan(key, func() (any, error) {
		defer cancel()
		generation := s.generation(series)
		buckets, err := s.next.FetchBuckets(fetchCtx, accountID, kind, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		if cacheable(buckets) {
			s.addIfCurrent(series, generation, key, buckets)
		}
		return buckets, nil
	})

	select {
	case res := <-resultCh:
		if res.Shared {
			metricBucketCacheRequestsTotal.WithLabelValues(cacheResultShared).Inc()
		} else {
			metricBucketCacheRequestsTotal.WithLabelValues(cacheResultMiss).Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]models.MetricBucket)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *cachingBucketStore) GetBucket(ctx context.Context, accountID string, kind models.RecordKind, granularity models.Granularity, start time.Time) (*models.MetricBucket, error) {
	return s.next.GetBucket(ctx, accountID, kind, granularity, start)
}

func (s *cachingBucketStore) UpsertBucket(ctx context.Context, bucket *models.MetricBucket) error {
	if err := s.next.UpsertBucket(ctx, bucket); err != nil {
		return err
	}
	s.invalidateSeries(bucket.AccountID, bucket.RecordKind)
	return nil
}

func (s *cachingBucketStore) Close() error {
	s.cache.Purge()
	return s.next.Close()
}

func (s *cachingBucketStore) generation(series string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[series]
}

func (s *cachingBucketStore) addIfCurrent(series string, generation uint64, key string, buckets []models.MetricBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[series] != generation {
		return
	}
	s.cache.Add(key, buckets)
}

func (s *cachingBucketStore) invalidateSeries(accountID string, kind models.RecordKind) {
	prefix := seriesCachePrefix(accountID, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[prefix]++
	for _, key := range s.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Remove(key)
		}
	}
}

func cacheable(buckets []models.MetricBucket) bool {
	if len(buckets) == 0 {
		return false
	}
	for i := range buckets {
		if !buckets[i].Complete {
			return false
		}
	}
	return true
}

func seriesCachePrefix(accountID string, kind models.RecordKind) string {
	return fmt.Sprintf("%q|%q|", accountID, kind)
}

func cacheKey(accountID string, kind models.RecordKind, rangeStart, rangeEnd time.Time) string {
	return fmt.Sprintf("%s%d|%d", seriesCachePrefix(accountID, kind), rangeStart.UnixNano(), rangeEnd.UnixNano())
}
