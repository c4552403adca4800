package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/config"
)

// WSHandler streams live dashboard snapshots.
type WSHandler struct {
	stats    *app.StatsService
	upgrader websocket.Upgrader
}

func NewWSHandler(stats *app.StatsService) *WSHandler {
	return &WSHandler{
		stats: stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type string `json:"type"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS sends the current dashboard, then a fresh one after every recorded
// submission. A {"type":"refresh"} message re-reads the dashboard on demand.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.stats.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer; gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.WithError(err).Debug("ws write failed")
				_ = conn.Close()
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "dashboard", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	push := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	push(h.snapshot(r))

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "refresh":
			push(h.snapshot(r))
		default:
			push(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) snapshot(r *http.Request) outboundMessage[any] {
	dash, err := h.stats.GetDashboardStats(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("dashboard read failed")
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "dashboard temporarily unavailable"}}
	}
	return outboundMessage[any]{Type: "dashboard", Payload: dash}
}
