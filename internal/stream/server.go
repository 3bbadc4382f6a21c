// Package stream pushes feed updates to dashboard clients over websockets.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

type Feed interface {
	State() *realtime.State
	Subscribe(fn func(realtime.Update)) (unsubscribe func())
}

// Message is the envelope written to every client.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Server struct {
	mux       *http.ServeMux
	feed      Feed
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan Message
	unsub     func()
	done      chan struct{}
	closeOnce sync.Once
}

func New(feed Feed) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		feed:      feed,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 256),
		done:      make(chan struct{}),
	}
	s.routes()
	go s.handleBroadcast()
	s.unsub = feed.Subscribe(s.enqueue)
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/state", s.handleState)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close detaches from the feed and disconnects every client.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.unsub()
		close(s.done)
		s.clientsMu.Lock()
		for conn := range s.clients {
			conn.Close()
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	})
}

func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// MessageFor shapes an update for the dashboard.
func MessageFor(u realtime.Update) Message {
	st := u.State
	switch u.Kind {
	case realtime.KindSnapshot:
		return Message{Type: string(u.Kind), Data: st.Data}
	case realtime.KindEvents, realtime.KindTelemetry:
		return Message{Type: string(u.Kind), Data: st.Events}
	case realtime.KindInsights:
		return Message{Type: string(u.Kind), Data: map[string]any{"predictions": st.Predictions, "insights": st.Events.Insights}}
	case realtime.KindConnection:
		return Message{Type: string(u.Kind), Data: map[string]any{"is_connected": st.Connected, "status": st.Status}}
	}
	return Message{Type: string(u.Kind), Data: st}
}

// enqueue drops the update when the broadcast queue is full so a slow client
// never stalls the feed.
func (s *Server) enqueue(u realtime.Update) {
	select {
	case s.broadcast <- MessageFor(u):
	case <-s.done:
	default:
		log.Warn().Str("kind", string(u.Kind)).Msg("broadcast queue full, dropping update")
	}
}

func (s *Server) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.closed() {
		http.Error(w, "stream closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Close shuts done before taking clientsMu, so this check cannot miss it.
	s.clientsMu.Lock()
	if s.closed() {
		s.clientsMu.Unlock()
		conn.Close()
		return
	}
	if err := write(conn, Message{Type: "init", Data: s.feed.State()}); err != nil {
		s.clientsMu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) handleBroadcast() {
	for {
		select {
		case msg := <-s.broadcast:
			s.clientsMu.Lock()
			for conn := range s.clients {
				if err := write(conn, msg); err != nil {
					conn.Close()
					delete(s.clients, conn)
				}
			}
			s.clientsMu.Unlock()
		case <-s.done:
			return
		}
	}
}

func write(conn *websocket.Conn, msg Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	st := s.feed.State()
	status := "online"
	if !st.Connected {
		status = "reconnecting"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": status, "feed": st.Status, "clients": s.Clients()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.feed.State()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
