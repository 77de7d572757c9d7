package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadMessage is the outgoing WebSocket message format.
type reloadMessage struct {
	Type string `json:"type"` // "reload"
	Why  string `json:"why,omitempty"`
}

// reloadHub tracks connected pages and tells them to reload when the
// glossary changes.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *reloadHub) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("termtip: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain incoming messages until the client goes away; the hub only
	// pushes, it never expects requests.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("termtip: websocket read: %v", err)
				}
				return
			}
		}
	}()
}

// broadcast sends a reload message to every connected page.
func (h *reloadHub) broadcast(why string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(reloadMessage{Type: "reload", Why: why}); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// drop removes and closes a connection.
func (h *reloadHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}
