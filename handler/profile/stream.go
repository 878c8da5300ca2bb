package profile

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mager/moodscale/moodscale"
	"github.com/mager/moodscale/profiler"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Event is one frame sent on the stream. Exactly one field is set.
type Event struct {
	Stage   moodscale.Stage    `json:"stage,omitempty"`
	Profile *moodscale.Profile `json:"profile,omitempty"`
	Error   *ErrorResponse     `json:"error,omitempty"`
}

// StreamHandler builds a profile over a WebSocket, reporting each stage as
// it starts and closing after the final profile or error frame.
type StreamHandler struct {
	log     *zap.SugaredLogger
	builder Builder
}

func (*StreamHandler) Pattern() string {
	return "/profile/stream"
}

func NewStreamHandler(log *zap.SugaredLogger, svc *profiler.Service) *StreamHandler {
	return newStreamHandler(log, svc)
}

func newStreamHandler(log *zap.SugaredLogger, b Builder) *StreamHandler {
	return &StreamHandler{log: log, builder: b}
}

// Stream profile
// @Summary Stream a listener's profile
// @Description Upgrades to a WebSocket, sends {"stage":...} frames and then {"profile":...}
// @Param user_id query string true "User ID"
// @Router /profile/stream [get]
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing user_id"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := func(ev Event) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(ev)
	}

	var sendErr error
	p, err := h.builder.Build(r.Context(), userID, true, func(s moodscale.Stage) {
		if sendErr == nil {
			sendErr = send(Event{Stage: s})
		}
	})
	if sendErr != nil {
		h.log.Infow("stream client went away", "user_id", userID, "error", sendErr)
		return
	}

	final := Event{Profile: p}
	if err != nil {
		status, msg := classify(err)
		h.log.Errorw("Failed to build profile", "user_id", userID, "status", status, "error", err)
		final = Event{Error: &ErrorResponse{Error: msg, Status: status}}
	}
	if err := send(final); err != nil {
		h.log.Infow("stream client went away", "user_id", userID, "error", err)
		return
	}

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
