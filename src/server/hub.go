package server

import (
	"context"
	"encoding/json"
	"net/http"

	"crypto-insight/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub loop
// Tracks connected sessions. There is no broadcast: sessions are isolated and
// data moves only as a reply to that client's own action.
// -----------------------------------------------------------------------------

func (s *DashboardServer) run() {
	for {
		select {
		case client, ok := <-s.register:
			if !ok {
				return
			}
			s.clients[client] = struct{}{}
			s.setCount(len(s.clients))

		case client, ok := <-s.unregister:
			if !ok {
				return
			}
			if _, exists := s.clients[client]; exists {
				delete(s.clients, client)
				close(client.send)
				s.setCount(len(s.clients))
			}
		}
	}
}

func (s *DashboardServer) setCount(n int) {
	s.countMutex.Lock()
	s.count = n
	s.countMutex.Unlock()
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered so a slow socket does not block a render reply
		send: make(chan interface{}, 16),
	}

	s.register <- client

	// Initial render with the default selection, queued before the pumps
	// start so nothing else touches the session state concurrently.
	s.renderAndReply(client, context.Background())

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Action Handling
// -----------------------------------------------------------------------------

// HandleClientAction applies one inbound action to the client's session and
// replies with a freshly rendered view. Runs on the client's readPump
// goroutine, which is the sole owner of client.state.
func (s *DashboardServer) HandleClientAction(client *Client, message []byte) {
	var action models.MClientAction
	if err := json.Unmarshal(message, &action); err != nil {
		s.Logger.Info("Failed to parse client action: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	switch action.Action {
	case "select_symbol":
		client.state.Symbol = action.Symbol
	case "set_hours":
		client.state.HoursBack = action.HoursBack
	case "refresh":
		s.Queries.InvalidateAll()
	default:
		s.reply(client, gin.H{"type": "error", "error": "unknown action: " + action.Action})
		return
	}

	s.renderAndReply(client, context.Background())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) renderAndReply(client *Client, ctx context.Context) {
	view, err := s.renderSelection(ctx, client.state)
	if err != nil {
		s.Logger.Error("Render pass aborted: %v", err)
		s.reply(client, gin.H{"type": "error", "error": err.Error()})
		return
	}
	if view == nil {
		s.reply(client, gin.H{"type": "empty", "message": "No symbols available."})
		return
	}

	// Normalization may have adjusted the requested selection; keep the
	// session in step with what was actually rendered.
	client.state = models.MSessionState{Symbol: view.Symbol, HoursBack: view.HoursBack}

	s.reply(client, gin.H{"type": "view", "view": view})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) reply(client *Client, payload interface{}) {
	select {
	case client.send <- payload:
	default:
		// Client buffer full; drop the reply rather than block the reader.
	}
}
