package fanout

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TheFaucett/mlb-predictor/internal/events"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

const (
	clientSendBuf = 256
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type client struct {
	gamePK int // 0 subscribes to everything
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
}

func (c *client) wants(gamePK int) bool {
	return c.gamePK == 0 || gamePK == 0 || c.gamePK == gamePK
}

// Server fans out engine events to connected presentation clients over
// WebSocket. Clients may filter to one game with ?game_pk=. The latest
// matchup snapshot per game is replayed to clients that connect late.
type Server struct {
	mu          sync.Mutex
	clients     map[*client]struct{}
	lastMatchup map[int][]byte
}

func NewServer(bus *events.Bus) *Server {
	s := &Server{
		clients:     make(map[*client]struct{}),
		lastMatchup: make(map[int][]byte),
	}
	bus.Subscribe(events.EventPitchDecision, s.forward)
	bus.Subscribe(events.EventMatchupChange, s.forward)
	bus.Subscribe(events.EventGameFinish, s.forward)
	bus.Subscribe(events.EventFeedStatus, s.forward)
	return s
}

// forward runs on the publisher's goroutine. It serializes the event once
// and enqueues it to every matching client without blocking.
func (s *Server) forward(evt events.Event) error {
	data, err := MarshalEvent(evt)
	if err != nil {
		telemetry.Warnf("fanout: marshal error: %v", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.Type == events.EventMatchupChange {
		s.lastMatchup[evt.GamePK] = data
	}

	for c := range s.clients {
		if !c.wants(evt.GamePK) {
			continue
		}
		s.enqueue(c, data)
	}
	return nil
}

// enqueue assumes s.mu is held.
func (s *Server) enqueue(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		telemetry.Metrics.FanoutDrops.Inc()
		telemetry.Warnf("fanout: dropping message for slow client game_pk=%d", c.gamePK)
	}
}

// HandleWS is the HTTP handler for WebSocket upgrade requests.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	gamePK, _ := strconv.Atoi(r.URL.Query().Get("game_pk"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		telemetry.Warnf("fanout: upgrade failed: %v", err)
		return
	}

	c := &client{
		gamePK: gamePK,
		conn:   conn,
		send:   make(chan []byte, clientSendBuf),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	for pk, snap := range s.lastMatchup {
		if c.wants(pk) {
			s.enqueue(c, snap)
		}
	}
	s.mu.Unlock()
	telemetry.Metrics.ActiveClients.Inc()

	telemetry.Plainf("fanout: client connected (game_pk=%d)", gamePK)

	go s.writeLoop(c)
	go s.readLoop(c)
}

// writeLoop drains the client's send channel onto the connection and owns
// the client lifecycle: on exit it deregisters the client (so forward never
// sends to a stale channel) and closes the connection.
func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.removeClient(c)
		c.conn.Close()
	}()

	for {
		var msg []byte
		select {
		case msg = <-c.send:
		case <-c.done:
			return
		case <-ticker.C:
			// ping frame, no payload
		}

		c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		kind := websocket.TextMessage
		if msg == nil {
			kind = websocket.PingMessage
		}
		if err := c.conn.WriteMessage(kind, msg); err != nil {
			if msg != nil {
				telemetry.Warnf("fanout: write error game_pk=%d: %v", c.gamePK, err)
			}
			return
		}
	}
}

// readLoop keeps the connection alive by consuming pongs and close frames;
// clients never send application messages upstream. On exit it signals
// writeLoop via c.done (it never closes c.send).
func (s *Server) readLoop(c *client) {
	defer close(c.done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	telemetry.Metrics.ActiveClients.Dec()
	telemetry.Plainf("fanout: client disconnected (game_pk=%d)", c.gamePK)
}

// ListenAndServe starts the fanout WebSocket server.
func (s *Server) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)

	addr := fmt.Sprintf(":%d", port)
	telemetry.Plainf("fanout: server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
