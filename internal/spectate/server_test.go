package spectate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

func dial(t *testing.T, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=" + session
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := Decode(msg)
	require.NoError(t, err)
	return env
}

func TestSpectatorReceivesLatestThenLive(t *testing.T) {
	h := quietHub(1)
	h.Publish("alice", flappy.Snapshot{Variant: "pipes", Mode: "playing", Score: 2})

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "alice")

	env := readEnvelope(t, conn)
	require.Equal(t, MsgSessions, env.T)
	sessions, err := DecodePayload[[]SessionInfo](env)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "pipes", sessions[0].Variant)

	env = readEnvelope(t, conn)
	require.Equal(t, MsgSnapshot, env.T)
	snap, err := DecodePayload[sessionSnapshot](env)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Score)

	// The client is registered before the greeting, so these are not lost
	h.Publish("bob", flappy.Snapshot{Mode: "playing", Score: 9})
	h.Publish("alice", flappy.Snapshot{Mode: "playing", Score: 3})

	env = readEnvelope(t, conn)
	snap, err = DecodePayload[sessionSnapshot](env)
	require.NoError(t, err)
	assert.Equal(t, "alice", snap.Session)
	assert.Equal(t, 3, snap.Score)
}

func TestSpectatorDisconnectUnregisters(t *testing.T) {
	h := quietHub(1)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	readEnvelope(t, conn)
	assert.Equal(t, 1, h.ClientCount())

	conn.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSessionsEndpoint(t *testing.T) {
	h := quietHub(1)
	h.Publish("carol", flappy.Snapshot{Variant: "sound", Mode: "end", Score: 12})

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var list []SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, SessionInfo{Session: "carol", Variant: "sound", Mode: "end", Score: 12}, list[0])
}

func TestSessionsEndpointRejectsPost(t *testing.T) {
	h := quietHub(1)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServerStartBindsPort(t *testing.T) {
	s := NewServer("127.0.0.1:0", quietHub(1))
	require.NoError(t, s.Start())
	defer s.Shutdown(t.Context())

	assert.NotEqual(t, "127.0.0.1:0", s.Addr())
	resp, err := http.Get("http://" + s.Addr() + "/sessions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
