package http

import (
	"net/http"

	"bucket-metrics/internal/charts"
	"bucket-metrics/internal/models"
)

// SeriesResponse is the body of GET .../series.
type SeriesResponse struct {
	Points  []models.ChartPoint  `json:"points"`
	Summary models.SeriesSummary `json:"summary"`
}

type seriesHandler struct {
	seriesGenerator charts.SeriesGenerator
}

func NewSeriesHandler(seriesGenerator charts.SeriesGenerator) AppHttpHandler {
	return &seriesHandler{
		seriesGenerator: seriesGenerator,
	}
}

func (h *seriesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	target, err := parseSeriesTarget(r)
	if err != nil {
		return err
	}
	window, err := parseWindow(r)
	if err != nil {
		return err
	}
	interval, err := parseInterval(r)
	if err != nil {
		return err
	}

	points, err := h.seriesGenerator.GenerateSeries(r.Context(), charts.SeriesRequest{
		AccountID:     target.accountID,
		RecordKind:    target.kind,
		Window:        window,
		PointInterval: interval,
	}, nil)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, SeriesResponse{
		Points:  points,
		Summary: models.SummarizeSeries(points),
	})
	return nil
}
