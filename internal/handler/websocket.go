package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/gorilla/websocket"
)

const sessionIdleTimeout = 10 * time.Minute

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is a client message on a calculator session
type WSMessage struct {
	Type    string          `json:"type"` // "press", "clear", "state", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSPressPayload carries keys to apply; Input is tokenized after Keys
type WSPressPayload struct {
	Keys  []string `json:"keys,omitempty"`
	Input string   `json:"input,omitempty"`
}

// WSResponse is a server message on a calculator session
type WSResponse struct {
	Type    string      `json:"type"` // "state", "error", "pong"
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload describes a rejected message
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Session serves an interactive calculator over a websocket. The state
// lives with the connection and is sent back after every message.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.log.Infof("Calculator session opened from %s", conn.RemoteAddr())
	st := scientific.New()
	h.send(conn, WSResponse{Type: "state", Payload: service.View(st)})

	for {
		conn.SetReadDeadline(time.Now().Add(sessionIdleTimeout))

		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warnf("Calculator session read error: %v", err)
			} else {
				h.log.Infof("Calculator session closed")
			}
			return
		}

		switch msg.Type {
		case "ping":
			h.send(conn, WSResponse{Type: "pong"})

		case "state":
			h.send(conn, WSResponse{Type: "state", Payload: service.View(st)})

		case "clear":
			st.Clear()
			h.send(conn, WSResponse{Type: "state", Payload: service.View(st)})

		case "press":
			var payload WSPressPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "invalid_payload", "invalid press payload")
				continue
			}
			keys := append(payload.Keys, scientific.Tokenize(payload.Input)...)
			if err := h.svc.Press(st, keys); err != nil {
				h.sendError(conn, "unknown_key", err.Error())
			}
			h.send(conn, WSResponse{Type: "state", Payload: service.View(st)})

		default:
			h.sendError(conn, "unknown_type", "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.log.Warnf("Failed to write session message: %v", err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, code, message string) {
	h.send(conn, WSResponse{Type: "error", Payload: WSErrorPayload{Code: code, Message: message}})
}
