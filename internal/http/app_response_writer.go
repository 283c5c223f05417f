package http

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"bucket-metrics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

var errHijackUnsupported = errors.New("response writer does not support hijacking")

// appResponseWriter is a wrapper around the http.ResponseWriter that stores app details for middleware access
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
	hijacked bool
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// Hijack hands the connection over to the websocket upgrader.
func (w *appResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.WrapResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	conn, rw, err := hijacker.Hijack()
	if err == nil {
		w.hijacked = true
	}
	return conn, rw, err
}

func (w *appResponseWriter) Hijacked() bool {
	return w.hijacked
}

// StatusCode is the status sent to the client: 101 once hijacked by an upgrade, 200 when the
// handler never wrote a header.
func (w *appResponseWriter) StatusCode() int {
	if w.hijacked {
		return http.StatusSwitchingProtocols
	}
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
