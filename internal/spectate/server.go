package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// Any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns the HTTP routes of the hub:
//
//	GET /ws?session=NAME  WebSocket feed, all sessions when NAME is empty
//	GET /sessions         JSON list of live sessions
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/sessions", h.serveSessions)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
		h.logger.Warn("cannot write session list", "error", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	session := r.URL.Query().Get("session")
	c := h.register(session)
	defer h.unregister(c)
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "session", session, "spectators", h.ClientCount())

	if err := h.greet(conn, session); err != nil {
		h.logger.Debug("greeting failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Spectators never send anything useful; reading only detects the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			h.logger.Info("spectator left", "remote", r.RemoteAddr, "session", session)
			return
		}
	}
}

// greet sends the session list, then the latest snapshot of a followed session.
func (h *Hub) greet(conn *websocket.Conn, session string) error {
	msg, err := Encode(MsgSessions, h.Sessions())
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return err
	}

	if session == "" {
		return nil
	}
	snap, ok := h.Latest(session)
	if !ok {
		return nil
	}
	msg, err = Encode(MsgSnapshot, sessionSnapshot{Session: session, Snapshot: snap})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// Server serves a Hub over HTTP.
type Server struct {
	hub  *Hub
	http *http.Server
}

// NewServer creates a spectator server listening on addr.
func NewServer(addr string, hub *Hub) *Server {
	return &Server{
		hub: hub,
		http: &http.Server{
			Addr:              addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens and serves in the background. It returns once the port is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("spectate: listen %s: %w", s.http.Addr, err)
	}
	s.http.Addr = ln.Addr().String()
	s.hub.logger.Info("spectator feed listening", "address", s.http.Addr)

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.hub.logger.Error("spectator server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Shutdown stops accepting spectators and waits for handlers up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
