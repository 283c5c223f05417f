package http

import (
	"net/http"

	"bucket-metrics/internal/aggregators"
	"bucket-metrics/internal/models"
)

// AggregateResponse is the body of GET .../aggregate.
type AggregateResponse struct {
	Result     *models.AggregationResult `json:"result"`
	HourlyRate models.HourlyRate         `json:"hourlyRate"`
}

type aggregateHandler struct {
	aggregationService aggregators.AggregationService
	rateNormalizer     aggregators.RateNormalizer
}

func NewAggregateHandler(aggregationService aggregators.AggregationService, rateNormalizer aggregators.RateNormalizer) AppHttpHandler {
	return &aggregateHandler{
		aggregationService: aggregationService,
		rateNormalizer:     rateNormalizer,
	}
}

// Handle aggregates [start, end) and reports the hourly rate extrapolated from the covered span.
func (h *aggregateHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	target, err := parseSeriesTarget(r)
	if err != nil {
		return err
	}
	window, err := parseWindow(r)
	if err != nil {
		return err
	}

	result, err := h.aggregationService.AggregateWindow(r.Context(), target.accountID, target.kind, window)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, AggregateResponse{
		Result:     result,
		HourlyRate: h.rateNormalizer.NormalizeToHourly(result),
	})
	return nil
}
