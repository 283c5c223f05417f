package http

import (
	"net/http"

	"bucket-metrics/internal/facades"
)

type overviewHandler struct {
	metricsFacade facades.MetricsFacade
}

func NewOverviewHandler(metricsFacade facades.MetricsFacade) AppHttpHandler {
	return &overviewHandler{
		metricsFacade: metricsFacade,
	}
}

// Handle returns the final dashboard view. Partial views are only available on the stream.
func (h *overviewHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	target, err := parseSeriesTarget(r)
	if err != nil {
		return err
	}

	view, err := h.metricsFacade.Load(r.Context(), target.accountID, target.kind, facades.Callbacks{})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, view)
	return nil
}
