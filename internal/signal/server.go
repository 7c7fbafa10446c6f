package signal

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/heroiclabs/nakama-common/runtime"

	"gestuno/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 4096
)

// Frame is one classification pushed by the external predictor. Match routes
// the frame to the right table; the predictor learns the id from its relay
// client's quick-match response.
type Frame struct {
	Match  string `json:"match"`
	Seat   int    `json:"seat"`
	Action string `json:"action"`
}

// Server accepts predictor connections over websocket and forwards
// classification frames into the registry. One predictor process typically
// serves all seats over a single connection.
type Server struct {
	registry *Registry
	logger   runtime.Logger
	upgrader websocket.Upgrader
}

func NewServer(registry *Registry, logger runtime.Logger) *Server {
	return &Server{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler returns the feed endpoint mux, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleFeed)
	return mux
}

// Start serves the feed endpoint on addr for the lifetime of the process.
func (s *Server) Start(addr string) {
	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			s.logger.Error("signal feed server stopped: %v", err)
		}
	}()
	s.logger.Info("signal feed listening on %s", addr)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("signal feed upgrade failed: %v", err)
		return
	}
	done := make(chan struct{})
	go s.pingLoop(conn, done)
	s.readPump(conn, done)
}

func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.logger.Debug("signal feed read ended: %v", err)
			return
		}

		var frame Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			s.logger.Warn("signal feed dropped malformed frame: %v", err)
			continue
		}
		s.registry.Push(frame.Match, frame.Seat, domain.ParseAction(frame.Action))
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
