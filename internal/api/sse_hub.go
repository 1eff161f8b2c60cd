package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"careerate/internal"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	SessionID string
	Channel   chan AgentEvent
}

// AgentEvent is one streamed agent update
type AgentEvent struct {
	SessionID     string                 `json:"session_id"`
	EventType     string                 `json:"event_type"`
	InteractionID string                 `json:"interaction_id,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// SSEHub manages Server-Sent Events for live agent session updates
type SSEHub struct {
	clients    map[string]map[chan AgentEvent]bool
	clientsMu  sync.RWMutex
	register   chan SSEClient
	unregister chan SSEClient
	broadcast  chan AgentEvent
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[string]map[chan AgentEvent]bool),
		register:   make(chan SSEClient, 10),
		unregister: make(chan SSEClient, 10),
		broadcast:  make(chan AgentEvent, 100),
	}

	go hub.run()
	return hub
}

// run processes SSE hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[chan AgentEvent]bool)
			}
			h.clients[client.SessionID][client.Channel] = true
			internal.Debugf("sse: client registered for session %s (total clients: %d)",
				client.SessionID, len(h.clients[client.SessionID]))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.SessionID]; exists {
				delete(clients, client.Channel)
				close(client.Channel)
				if len(clients) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			if clients, exists := h.clients[event.SessionID]; exists {
				for clientChan := range clients {
					select {
					case clientChan <- event:
						// Event sent successfully
					default:
						// Client channel is full, skip
						internal.Warnf("sse: client channel full for session %s, skipping event",
							event.SessionID)
					}
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends an event to all clients listening to a session
func (h *SSEHub) Broadcast(event AgentEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case h.broadcast <- event:
	default:
		internal.Warnf("sse: broadcast channel full, dropping event: %s", event.EventType)
	}
}

// ServeSession streams events for one agent session until the client hangs up
func (h *SSEHub) ServeSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan AgentEvent, 10)
	select {
	case h.register <- SSEClient{SessionID: sessionID, Channel: clientChan}:
	default:
		http.Error(w, "SSE hub registration failed", http.StatusInternalServerError)
		return
	}
	defer func() {
		select {
		case h.unregister <- SSEClient{SessionID: sessionID, Channel: clientChan}:
		default:
		}
	}()

	ctx := r.Context()
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, open := <-clientChan:
			if !open {
				return
			}
			eventJSON, err := json.Marshal(event)
			if err != nil {
				internal.Warnf("sse: failed to marshal event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: agent\ndata: %s\n\n", eventJSON)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"status\":\"alive\",\"timestamp\":%q}\n\n",
				time.Now().Format(time.RFC3339))
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

// ClientCount returns the number of active clients for a session
func (h *SSEHub) ClientCount(sessionID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[sessionID])
}
