package main

import (
	"encoding/json"
	"sync"
)

// Hub fans a run's progress events out to every connected websocket
// client, directly adapted from the teacher's broadcast Hub (hub.go):
// the same register/unregister/broadcast-channel shape, retargeted from
// board/history/status payloads at Gomoku match events to RunEvent
// payloads at batch-solve progress.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan RunEvent
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan RunEvent, 64),
	}
}

// Run drains the broadcast channel until done fires, fanning each event
// out to every registered client's send buffer.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-h.broadcast:
			msgType := "level"
			if event.Done {
				msgType = "run_complete"
			}
			msg := wsMessage{Type: msgType, Payload: mustMarshal(event)}
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(msg)
			}
			h.mu.Unlock()
		}
	}
}

// Publish enqueues event for broadcast; callers elsewhere in the package
// wire this as the BatchRunner's onEvent callback.
func (h *Hub) Publish(event RunEvent) {
	select {
	case h.broadcast <- event:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}
