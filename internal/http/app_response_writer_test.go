package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bucket-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppResponseWriter_ErrorCode(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Empty(t, appWriter.ErrorCode())

	unavailable := svcerrors.NewUnavailableError("AGG_9001", "bucket store unavailable", nil)
	appWriter.SetServiceError(unavailable)
	assert.Same(t, unavailable, appWriter.svcError)
	assert.Equal(t, "AGG_9001", appWriter.ErrorCode())

	// the last error written wins
	appWriter.SetServiceError(svcerrors.NewInvalidArgumentError("HTTP_1000", `query parameter "end" must not be before "start"`, nil))
	assert.Equal(t, "HTTP_1000", appWriter.ErrorCode())

	appWriter.SetServiceError(nil)
	assert.Empty(t, appWriter.ErrorCode())
}

func TestAppResponseWriter_StatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(w *appResponseWriter)
		wantStatus int
	}{
		{
			name:       "nothing written",
			write:      func(w *appResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "accepted intake",
			write: func(w *appResponseWriter) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"batchId":"key1"}`))
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "body without header",
			write: func(w *appResponseWriter) {
				_, _ = w.Write([]byte(`{}`))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "later headers are ignored",
			write: func(w *appResponseWriter) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			appWriter := newAppResponseWriter(rr, 1)
			tt.write(appWriter)

			assert.Equal(t, tt.wantStatus, appWriter.StatusCode())
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.False(t, appWriter.Hijacked())
		})
	}
}

func TestAppResponseWriter_Hijack_Unsupported(t *testing.T) {
	t.Parallel()

	// ResponseRecorder cannot be hijacked
	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)

	_, _, err := appWriter.Hijack()
	assert.ErrorIs(t, err, errHijackUnsupported)
	assert.False(t, appWriter.Hijacked())
}

func TestAppResponseWriter_Hijack_ReportsSwitchingProtocols(t *testing.T) {
	t.Parallel()

	statusCh := make(chan int, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appWriter := newAppResponseWriter(w, r.ProtoMajor)

		conn, buf, err := appWriter.Hijack()
		if !assert.NoError(t, err) {
			statusCh <- 0
			return
		}
		defer conn.Close()

		_, _ = buf.WriteString("HTTP/1.1 204 No Content\r\nConnection: close\r\n\r\n")
		_ = buf.Flush()
		statusCh <- appWriter.StatusCode()
	}))
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/accounts/acc-1/kinds/items/overview/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, http.StatusSwitchingProtocols, <-statusCh)
}
