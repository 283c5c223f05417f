package http

import (
	"context"
	"net/http"
	"time"

	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/shared/svcerrors"
	"bucket-metrics/internal/streams"

	"github.com/gorilla/websocket"
)

const (
	streamMessageProgress = "progress"
	streamMessageUpdate   = "update"
	streamMessageError    = "error"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultReadTimeout  = 60 * time.Second

	// clients only send control frames
	maxClientMessageBytes = 512
)

// StreamMessage is one websocket frame of the overview stream. A failed refresh is sent as an
// error frame that still carries the last good view.
type StreamMessage struct {
	Type  string              `json:"type"`
	View  *models.MetricsView `json:"view,omitempty"`
	Error *ErrorResponse      `json:"error,omitempty"`
}

type OverviewStreamOptions struct {
	PingInterval time.Duration
	WriteTimeout time.Duration

	// ReadTimeout must exceed PingInterval, pongs extend it
	ReadTimeout time.Duration
}

type overviewStreamHandler struct {
	metricsPoller streams.MetricsPoller
	upgrader      websocket.Upgrader
	opts          OverviewStreamOptions
}

func NewOverviewStreamHandler(metricsPoller streams.MetricsPoller, opts OverviewStreamOptions) AppHttpHandler {
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.ReadTimeout <= opts.PingInterval {
		opts.ReadTimeout = max(defaultReadTimeout, 2*opts.PingInterval)
	}
	return &overviewStreamHandler{
		metricsPoller: metricsPoller,
		upgrader: websocket.Upgrader{
			// same origin, or non-browser clients without an Origin header
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		opts: opts,
	}
}

// Handle upgrades to a websocket and forwards every MetricsUpdate of a poller subscription until
// either side goes away. This goroutine is the only writer on the connection.
func (h *overviewStreamHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	target, err := parseSeriesTarget(r)
	if err != nil {
		return err
	}

	logger := loggers.Ctx(r.Context()).With().
		Str(loggers.FieldAccountID, target.accountID).
		Str(loggers.FieldRecordKind, string(target.kind)).
		Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already replied with an HTTP error
		logger.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.readLoop(conn, cancel)

	metricActiveStreams.Inc()
	defer metricActiveStreams.Dec()
	logger.Info().Msg("overview stream opened")

	updates := h.metricsPoller.Subscribe(ctx, target.accountID, target.kind)
	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("overview stream closed by client")
			return nil
		case update, ok := <-updates:
			if !ok {
				h.writeClose(conn)
				logger.Info().Msg("overview stream ended")
				return nil
			}
			if err := h.write(conn, toStreamMessage(r, update)); err != nil {
				logger.Debug().Err(err).Msg("overview stream write failed")
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readLoop processes control frames and cancels the stream once the peer is gone.
func (h *overviewStreamHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxClientMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *overviewStreamHandler) write(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (h *overviewStreamHandler) writeClose(conn *websocket.Conn) {
	deadline := time.Now().Add(h.opts.WriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended"), deadline)
}

func toStreamMessage(r *http.Request, update streams.MetricsUpdate) StreamMessage {
	if update.Err != nil {
		svcErr, ok := svcerrors.AsServiceError(update.Err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(update.Err)
		}
		return StreamMessage{
			Type: streamMessageError,
			View: update.View,
			Error: &ErrorResponse{
				RequestID:        requestID(r),
				ErrorCategory:    svcErr.Category,
				ErrorCode:        svcErr.Code,
				ErrorDescription: svcErr.Message,
			},
		}
	}
	if !update.Final {
		return StreamMessage{Type: streamMessageProgress, View: update.View}
	}
	return StreamMessage{Type: streamMessageUpdate, View: update.View}
}
