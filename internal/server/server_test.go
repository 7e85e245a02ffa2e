package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"terraflow/internal/pipeline"

	"github.com/gorilla/websocket"
)

func testPipeline() *pipeline.Pipeline {
	cfg := pipeline.DefaultConfig()
	cfg.Width = 32
	cfg.Height = 32
	cfg.Hydraulic.Droplets = 200
	p := pipeline.NewWithConfig(cfg)
	p.Reset(42)
	p.Run()
	return p
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestInitialFrameOnConnect(t *testing.T) {
	s := New(testPipeline(), 30)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	var frame Frame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "terrain" {
		t.Fatalf("frame type = %q, want terrain", frame.Type)
	}
	if frame.Width != 32 || frame.Height != 32 {
		t.Fatalf("frame size = %dx%d, want 32x32", frame.Width, frame.Height)
	}
	if len(frame.Cells) != 32*32 {
		t.Fatalf("frame carries %d cells, want %d", len(frame.Cells), 32*32)
	}
	if !frame.Done {
		t.Fatal("finished pipeline reported as not done")
	}
	if frame.Stage != "done" {
		t.Fatalf("frame stage = %q, want done", frame.Stage)
	}
}

func TestResetRequestIsQueued(t *testing.T) {
	s := New(testPipeline(), 30)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	var frame Frame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}

	if err := conn.WriteJSON(resetMessage{Type: "reset", Seed: 77}); err != nil {
		t.Fatalf("write reset: %v", err)
	}

	select {
	case seed := <-s.resets:
		if seed != 77 {
			t.Fatalf("queued seed = %d, want 77", seed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reset request never queued")
	}
}
