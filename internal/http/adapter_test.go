package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bucket-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlingAdapter_Errors(t *testing.T) {
	t.Parallel()

	storeDown := errors.New("dial tcp 10.0.0.7:443: connection refused")

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedCategory string
		expectedCode     string
		expectedMessage  string
	}{
		{
			name:             "invalid query parameter",
			err:              errInvalidQueryParam("start", "must be an RFC3339 instant", errors.New("parsing time")),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "invalid_argument",
			expectedCode:     "HTTP_1000",
			expectedMessage:  `query parameter "start" must be an RFC3339 instant`,
		},
		{
			name:             "blank path parameter",
			err:              errInvalidPathParam(paramAccountID),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "invalid_argument",
			expectedCode:     "HTTP_1001",
			expectedMessage:  `path parameter "accountID" is required`,
		},
		{
			name:             "bucket store unavailable",
			err:              svcerrors.NewUnavailableError("AGG_9001", "bucket store unavailable", fmt.Errorf("bucketStoreFetchFailed: %w", storeDown)),
			expectedStatus:   http.StatusServiceUnavailable,
			expectedCategory: "unavailable",
			expectedCode:     "AGG_9001",
			expectedMessage:  "bucket store unavailable",
		},
		{
			name:             "duplicate intake batch",
			err:              svcerrors.NewResourceConflictError("ING_1001", "bucket batch already processed", errors.New("intake batch already exists")),
			expectedStatus:   http.StatusConflict,
			expectedCategory: "resource_conflict",
			expectedCode:     "ING_1001",
			expectedMessage:  "bucket batch already processed",
		},
		{
			name:             "wrapped series limit",
			err:              fmt.Errorf("overview: %w", svcerrors.NewInvalidArgumentError("SER_1001", "too many points: 2000 > 1440", nil)),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "invalid_argument",
			expectedCode:     "SER_1001",
			expectedMessage:  "too many points: 2000 > 1440",
		},
		{
			name:             "facade internal failure",
			err:              svcerrors.NewInternalError("FAC_9000", storeDown),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "FAC_9000",
			expectedMessage:  "internal server error",
		},
		{
			name:             "plain error",
			err:              context.Canceled,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SYS_9001",
			expectedMessage:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := errorHandlingAdapter(&testHandler{
				handleFunc: func(w http.ResponseWriter, r *http.Request) error {
					return tt.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/accounts/acc-1/kinds/items/aggregate", nil)
			reqID := "req-" + tt.expectedCode
			req.Header.Set(headerRequestID, reqID)

			rr := httptest.NewRecorder()
			appWriter := newAppResponseWriter(rr, 1)
			handler.ServeHTTP(appWriter, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.NotContains(t, rr.Body.String(), "connection refused", "causes stay out of the body")

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, reqID, errorResponse.RequestID)
			assert.Equal(t, tt.expectedCategory, errorResponse.ErrorCategory)
			assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
			assert.Equal(t, tt.expectedMessage, errorResponse.ErrorDescription)

			// the code is left on the writer for the metrics and completion log middlewares
			status, errorCode := responseOutcome(appWriter)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, errorCode)
		})
	}
}

func TestErrorHandlingAdapter_NoError(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			writeJSON(w, http.StatusAccepted, map[string]any{"batchId": "key1", "acceptedCount": 2})
			return nil
		},
	})

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)
	handler.ServeHTTP(appWriter, httptest.NewRequest(http.MethodPost, "/v1/buckets", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"batchId":"key1","acceptedCount":2}`, rr.Body.String())
	assert.Empty(t, appWriter.ErrorCode())
}

// testHandler wraps a function to implement AppHttpHandler interface for testing
type testHandler struct {
	handleFunc func(w http.ResponseWriter, r *http.Request) error
}

func (h *testHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return h.handleFunc(w, r)
}
