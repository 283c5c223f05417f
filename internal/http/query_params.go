package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"bucket-metrics/internal/models"

	"github.com/go-chi/chi/v5"
)

const (
	paramStart    = "start"
	paramEnd      = "end"
	paramInterval = "interval"

	defaultIntervalMinutes = 60
)

// seriesTarget is the (account, kind) named by the route.
type seriesTarget struct {
	accountID string
	kind      models.RecordKind
}

func parseSeriesTarget(r *http.Request) (seriesTarget, error) {
	accountID := strings.TrimSpace(chi.URLParam(r, paramAccountID))
	if accountID == "" {
		return seriesTarget{}, errInvalidPathParam(paramAccountID)
	}
	kind := strings.TrimSpace(chi.URLParam(r, paramRecordKind))
	if kind == "" {
		return seriesTarget{}, errInvalidPathParam(paramRecordKind)
	}
	return seriesTarget{accountID: accountID, kind: models.RecordKind(kind)}, nil
}

// parseWindow reads start and end as RFC3339 instants.
func parseWindow(r *http.Request) (models.TimeWindow, error) {
	start, err := parseInstant(r, paramStart)
	if err != nil {
		return models.TimeWindow{}, err
	}
	end, err := parseInstant(r, paramEnd)
	if err != nil {
		return models.TimeWindow{}, err
	}
	window, err := models.NewTimeWindow(start, end)
	if err != nil {
		return models.TimeWindow{}, errInvalidQueryParam(paramEnd, "must not be before start", err)
	}
	return window, nil
}

func parseInstant(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, errInvalidQueryParam(name, "is required", nil)
	}
	instant, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errInvalidQueryParam(name, "must be an RFC3339 instant", err)
	}
	return instant, nil
}

// parseInterval reads the point interval in minutes, 60 when absent.
func parseInterval(r *http.Request) (time.Duration, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(paramInterval))
	if raw == "" {
		return defaultIntervalMinutes * time.Minute, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, errInvalidQueryParam(paramInterval, "must be a positive number of minutes", err)
	}
	return time.Duration(minutes) * time.Minute, nil
}
