package aggregators

import (
	"math"

	"bucket-metrics/internal/models"
)

//go:generate mockgen -source=rate_normalizer.go -destination=./mocks/rate_normalizer_mock.go -package=mocks
type RateNormalizer interface {
	// NormalizeToHourly scales a result to a 60 minute span using the span it actually covered.
	NormalizeToHourly(result *models.AggregationResult) models.HourlyRate
}

type rateNormalizer struct{}

func NewRateNormalizer() RateNormalizer {
	return &rateNormalizer{}
}

// NormalizeToHourly uses CoveredEnd-CoveredStart, inner gaps included, as the elapsed span. With
// nothing covered the rate is unknown, so NoData is set instead of reporting a zero rate.
func (n *rateNormalizer) NormalizeToHourly(result *models.AggregationResult) models.HourlyRate {
	actualMinutes := result.CoveredDuration().Minutes()
	if actualMinutes <= 0 {
		return models.HourlyRate{NoData: true}
	}

	scale := 60 / actualMinutes
	exact := float64(result.Count) * scale
	return models.HourlyRate{
		Count:          int64(math.Round(exact)),
		CountExact:     exact,
		Cost:           result.Cost * scale,
		CoveredMinutes: actualMinutes,
	}
}
