package eventshandler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"corecrew/internal/platform/events"
)

const (
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
	bufferSize   = 64
)

// Subscriber is the broker side of the live feed.
type Subscriber interface {
	Subscribe(name string, buffer int) (<-chan events.Event, func())
}

type Handler struct {
	broker         Subscriber
	logger         *slog.Logger
	allowedOrigins []string
}

func NewHandler(broker Subscriber, logger *slog.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{broker: broker, logger: logger, allowedOrigins: allowedOrigins}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleStream)
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if allowed == "*" || strings.EqualFold(origin, allowed) {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// handleStream pushes every change event as a JSON text frame. The optional
// collection query parameter narrows the feed.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	collection := strings.TrimSpace(r.URL.Query().Get("collection"))

	upgrader := h.upgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	feed, cancel := h.broker.Subscribe("ws:"+r.RemoteAddr, bufferSize)
	defer cancel()

	// Client frames are ignored; reading surfaces the close handshake.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case evt, ok := <-feed:
			if !ok {
				return
			}
			if collection != "" && evt.Collection != collection {
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteJSON(evt); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Debug("websocket closed", slog.String("error", err.Error()))
				}
				return
			}
		}
	}
}
