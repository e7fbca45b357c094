package inspect

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/termo-dev/termo/pkg/nav"
)

// EventType distinguishes messages on the event stream.
type EventType string

const (
	EventStarted  EventType = "started"
	EventFinished EventType = "finished"
)

// Event is one message on the /events WebSocket stream.
type Event struct {
	Type      EventType  `json:"type"`
	Path      string     `json:"path,omitempty"`
	Direction string     `json:"direction"`
	To        *entryJSON `json:"to,omitempty"`
	From      *entryJSON `json:"from,omitempty"`
	Error     string     `json:"error,omitempty"`
	ElapsedMS float64    `json:"elapsed_ms,omitempty"`
}

var _ nav.Observer = (*Server)(nil)

// TransitionStarted implements nav.Observer.
func (s *Server) TransitionStarted(path string, direction nav.Direction) {
	s.broadcast(Event{
		Type:      EventStarted,
		Path:      path,
		Direction: string(direction),
	})
}

// TransitionFinished implements nav.Observer.
func (s *Server) TransitionFinished(to, from *nav.Route, direction nav.Direction, err error, elapsed time.Duration) {
	ev := Event{
		Type:      EventFinished,
		Direction: string(direction),
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
	}
	if to != nil {
		j := toEntryJSON(*to)
		ev.To = &j
		ev.Path = to.Path
	}
	if from != nil {
		j := toEntryJSON(*from)
		ev.From = &j
	}
	if err != nil {
		ev.Error = err.Error()
	}
	s.broadcast(ev)
}

// handleEvents upgrades the connection and keeps it registered until the
// client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// broadcast sends an event to all connected clients, dropping clients whose
// writes fail.
func (s *Server) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected event stream clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
