package aggregators

import (
	"testing"
	"time"

	"bucket-metrics/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRateNormalizer_NormalizeToHourly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		covered   time.Duration
		count     int64
		cost      float64
		wantCount int64
		wantExact float64
		wantCost  float64
		wantNo    bool
	}{
		{
			name:      "full hour is unchanged",
			covered:   time.Hour,
			count:     100,
			cost:      1.5,
			wantCount: 100,
			wantExact: 100,
			wantCost:  1.5,
		},
		{
			name:      "45 minutes scaled up",
			covered:   45 * time.Minute,
			count:     30,
			cost:      0.3,
			wantCount: 40,
			wantExact: 40,
			wantCost:  0.4,
		},
		{
			name:      "90 minutes scaled down",
			covered:   90 * time.Minute,
			count:     165,
			wantCount: 110,
			wantExact: 110,
		},
		{
			name:      "rounds to nearest",
			covered:   7 * time.Minute,
			count:     1,
			wantCount: 9,
			wantExact: 60.0 / 7,
		},
		{
			name:    "nothing covered",
			covered: 0,
			count:   12,
			wantNo:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := &models.AggregationResult{
				CoveredStart: aggAt(13, 0),
				CoveredEnd:   aggAt(13, 0).Add(tt.covered),
				BucketSums:   models.BucketSums{Count: tt.count, Cost: tt.cost},
			}

			rate := NewRateNormalizer().NormalizeToHourly(result)

			if tt.wantNo {
				assert.True(t, rate.NoData)
				assert.Zero(t, rate.Count)
				return
			}
			assert.False(t, rate.NoData)
			assert.Equal(t, tt.wantCount, rate.Count)
			assert.InDelta(t, tt.wantExact, rate.CountExact, 1e-9)
			assert.InDelta(t, tt.wantCost, rate.Cost, 1e-9)
			assert.InDelta(t, tt.covered.Minutes(), rate.CoveredMinutes, 1e-9)
		})
	}
}
