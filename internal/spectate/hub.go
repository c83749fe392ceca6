// Package spectate streams live round snapshots to WebSocket spectators.
package spectate

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

// Defaults for a Hub.
const (
	DefaultBroadcastEvery = 3 // 60 Hz simulation, 20 Hz to spectators
	DefaultStaleAfter     = 30 * time.Second
	sendBuffer            = 32
)

// SessionInfo describes one live session for the session list.
type SessionInfo struct {
	Session string  `json:"session"`
	Variant string  `json:"variant"`
	Mode    string  `json:"mode"`
	Score   int     `json:"score"`
	Elapsed float64 `json:"elapsed"`
}

type sessionState struct {
	latest    flappy.Snapshot
	publishes int
	updated   time.Time
}

// client is one connected spectator. An empty session follows every session.
type client struct {
	session string
	send    chan []byte
}

// Hub fans snapshots out to spectators. It is safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	sessions map[string]*sessionState

	broadcastEvery int
	staleAfter     time.Duration
	now            func() time.Time
	logger         *log.Logger
}

// NewHub creates a hub that forwards every broadcastEvery-th snapshot of a session.
// Mode changes are always forwarded.
func NewHub(broadcastEvery int, logger *log.Logger) *Hub {
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:        make(map[*client]struct{}),
		sessions:       make(map[string]*sessionState),
		broadcastEvery: broadcastEvery,
		staleAfter:     DefaultStaleAfter,
		now:            time.Now,
		logger:         logger,
	}
}

// Publish records snap as the latest state of session and forwards it
// to subscribed spectators. Slow spectators miss frames; Publish never blocks.
func (h *Hub) Publish(session string, snap flappy.Snapshot) {
	h.mu.Lock()
	st, ok := h.sessions[session]
	if !ok {
		st = &sessionState{}
		h.sessions[session] = st
	}
	modeChanged := st.latest.Mode != snap.Mode
	st.latest = snap
	st.updated = h.now()
	st.publishes++
	forward := modeChanged || st.publishes%h.broadcastEvery == 0
	h.mu.Unlock()

	if !forward {
		return
	}

	msg, err := Encode(MsgSnapshot, sessionSnapshot{Session: session, Snapshot: snap})
	if err != nil {
		h.logger.Error("cannot encode snapshot", "session", session, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.session != "" && c.session != session {
			continue
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}

// sessionSnapshot is the payload of a snapshot message.
type sessionSnapshot struct {
	Session string `json:"session"`
	flappy.Snapshot
}

// Sessions lists sessions that published recently, sorted by name.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-h.staleAfter)
	out := make([]SessionInfo, 0, len(h.sessions))
	for name, st := range h.sessions {
		if st.updated.Before(cutoff) {
			delete(h.sessions, name)
			continue
		}
		out = append(out, SessionInfo{
			Session: name,
			Variant: st.latest.Variant,
			Mode:    st.latest.Mode,
			Score:   st.latest.Score,
			Elapsed: st.latest.Elapsed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Session < out[j].Session })
	return out
}

// Latest returns the last snapshot published for session.
func (h *Hub) Latest(session string) (flappy.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st, ok := h.sessions[session]
	if !ok {
		return flappy.Snapshot{}, false
	}
	return st.latest, true
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(session string) *client {
	c := &client{session: session, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}
