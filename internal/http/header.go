package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID      = "x-request-id"
	headerIdempotencyKey = "idempotency-key"
	headerAccountID      = "x-account-id"
)

const (
	paramAccountID  = "accountID"
	paramRecordKind = "recordKind"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
}

func accountID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerAccountID))
}
