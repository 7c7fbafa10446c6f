package signal

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/heroiclabs/nakama-common/runtime"

	"gestuno/internal/domain"
	"gestuno/internal/ports"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func waitForAction(t *testing.T, actions ports.ActionSource, seat int, want domain.Action) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if actions.Read(seat) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("seat %d never reached action %q, last was %q", seat, want, actions.Read(seat))
}

func TestServer_ForwardsFramesToRegistry(t *testing.T) {
	registry := NewRegistry()
	actions := registry.Match("table-1")
	actions.Attach(0)
	actions.Attach(1)

	srv := httptest.NewServer(NewServer(registry, noopLogger{}).Handler())
	defer srv.Close()

	conn := dialFeed(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-1","seat":0,"action":"left"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, actions, 0, domain.ActionLeft)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-1","seat":1,"action":"clench"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, actions, 1, domain.ActionClench)

	if got := actions.Read(0); got != domain.ActionLeft {
		t.Fatalf("seat 0 = %q after seat 1 push, want %q", got, domain.ActionLeft)
	}
}

func TestServer_RoutesFramesByMatch(t *testing.T) {
	registry := NewRegistry()
	tableA := registry.Match("table-a")
	tableB := registry.Match("table-b")
	tableA.Attach(0)
	tableB.Attach(0)

	srv := httptest.NewServer(NewServer(registry, noopLogger{}).Handler())
	defer srv.Close()

	conn := dialFeed(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-a","seat":0,"action":"clench"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, tableA, 0, domain.ActionClench)

	if got := tableB.Read(0); got != domain.ActionNone {
		t.Fatalf("table-b seat 0 = %q, want none for a frame addressed to table-a", got)
	}
}

func TestServer_UnknownActionReadsNone(t *testing.T) {
	registry := NewRegistry()
	actions := registry.Match("table-1")
	actions.Attach(0)

	srv := httptest.NewServer(NewServer(registry, noopLogger{}).Handler())
	defer srv.Close()

	conn := dialFeed(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-1","seat":0,"action":"right"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, actions, 0, domain.ActionRight)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-1","seat":0,"action":"shrug"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, actions, 0, domain.ActionNone)
}

func TestServer_MalformedFrameKeepsConnection(t *testing.T) {
	registry := NewRegistry()
	actions := registry.Match("table-1")
	actions.Attach(0)

	srv := httptest.NewServer(NewServer(registry, noopLogger{}).Handler())
	defer srv.Close()

	conn := dialFeed(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"match":"table-1","seat":0,"action":"clench"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForAction(t, actions, 0, domain.ActionClench)
}

func TestPingLoop_StopsWhenReadPumpEnds(t *testing.T) {
	s := NewServer(NewRegistry(), noopLogger{})

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		s.pingLoop(nil, done)
		close(stopped)
	}()

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("ping loop kept running after the connection ended")
	}
}
