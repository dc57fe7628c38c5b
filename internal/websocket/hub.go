package websocket

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"equate-backend/internal/chat"
	"equate-backend/internal/models"
	"equate-backend/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub bridges client connections and their sessions: inbound chat events
// start turns, outbound chunk/chat/error events stream the results back.
type Hub struct {
	sessions    *session.Manager
	orch        *chat.Orchestrator
	turnTimeout time.Duration
}

func NewHub(sessions *session.Manager, orch *chat.Orchestrator, turnTimeout time.Duration) *Hub {
	return &Hub{
		sessions:    sessions,
		orch:        orch,
		turnTimeout: turnTimeout,
	}
}

// client serializes writes to one connection; the turn goroutine and any
// error replies share it.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// send writes one event. Write errors are ignored: a client that
// disconnected mid-turn simply stops receiving output.
func (c *client) send(msgType, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteJSON(models.WSMessage{Type: msgType, Payload: payload})
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	connID := uuid.NewString()
	sess := h.sessions.Connect(connID)
	c := &client{conn: conn}
	log.Printf("WebSocket connected: session %s (total: %d)", connID, h.sessions.Count())

	defer func() {
		h.sessions.Disconnect(connID)
		conn.Close()
		log.Printf("WebSocket disconnected: session %s", connID)
	}()

	for {
		var msg models.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		if msg.Type != models.WSTypeChat {
			continue
		}
		prompt := strings.TrimSpace(msg.Payload)
		if prompt == "" {
			continue
		}

		// Run the turn off the read loop so disconnects are still seen;
		// the session gate keeps turns sequential.
		go h.runTurn(c, sess, prompt)
	}
}

func (h *Hub) runTurn(c *client, sess *session.Session, prompt string) {
	if !sess.BeginTurn() {
		c.send(models.WSTypeError, "A response is already being generated for this session.")
		return
	}
	defer sess.EndTurn()

	ctx, cancel := context.WithTimeout(context.Background(), h.turnTimeout)
	defer cancel()

	log.Printf("[user prompt] %s", prompt)

	reply, err := h.orch.RunTurn(ctx, sess.Conv, prompt, func(chunk string) {
		c.send(models.WSTypeChunk, chunk)
	})
	if err != nil {
		log.Printf("Turn failed for session %s: %v", sess.ID, err)
		c.send(models.WSTypeError, "Something went wrong while generating the response. Please try again.")
		return
	}

	log.Printf("[AI response] %s", reply)
	c.send(models.WSTypeChat, reply)
}
