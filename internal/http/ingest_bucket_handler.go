package http

import (
	"net/http"

	"bucket-metrics/internal/ingestors"
)

type ingestBucketHandler struct {
	bucketIntakeService ingestors.BucketIntakeService
}

func NewIngestBucketHandler(bucketIntakeService ingestors.BucketIntakeService) AppHttpHandler {
	return &ingestBucketHandler{
		bucketIntakeService: bucketIntakeService,
	}
}

// Handle processes POST /v1/buckets requests.
func (h *ingestBucketHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.bucketIntakeService.IngestBuckets(r.Context(), accountID(r), idempotencyKey(r), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}
