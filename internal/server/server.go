package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"terraflow/internal/core"
	"terraflow/internal/pipeline"
	"terraflow/pkg/terrain"

	"github.com/gorilla/websocket"
)

// Frame is one snapshot of the running pipeline sent to every client.
type Frame struct {
	Type     string       `json:"type"`
	Stage    string       `json:"stage"`
	Progress float64      `json:"progress"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Cells    []uint8      `json:"cells"`
	Rivers   [][]PointDTO `json:"rivers,omitempty"`
	Done     bool         `json:"done"`
}

// PointDTO is a single river point on the wire.
type PointDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
	Flow  float64 `json:"flow"`
}

type resetMessage struct {
	Type string `json:"type"`
	Seed int64  `json:"seed"`
}

// Server streams pipeline progress to websocket clients and accepts
// reset requests from them.
type Server struct {
	pipe *pipeline.Pipeline
	tps  int

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
	resets  chan int64
}

// New constructs a server around the provided pipeline. Broadcast frames
// are paced at the given ticks per second.
func New(pipe *pipeline.Pipeline, tps int) *Server {
	return &Server{
		pipe: pipe,
		tps:  tps,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		resets:  make(chan int64, 8),
	}
}

// Handler returns the websocket endpoint handler.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWebSocket)
}

// Run steps the pipeline and broadcasts frames until the pipeline is
// done and no reset requests arrive. It blocks; callers usually run it
// in a goroutine next to http.ListenAndServe.
func (s *Server) Run() {
	ticker := core.NewFixedStep(s.tps)
	for {
		select {
		case seed := <-s.resets:
			log.Printf("server: reset requested with seed %d", seed)
			s.pipe.Reset(seed)
		default:
		}

		if ticker.ShouldStep() {
			if !s.pipe.Done() {
				s.pipe.Step()
			}
			s.broadcast(s.buildFrame())
		}
		time.Sleep(time.Millisecond)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	s.send(conn, connMu, s.buildFrame())

	for {
		var msg resetMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "reset" {
			select {
			case s.resets <- msg.Seed:
			default:
				log.Print("server: reset queue full, dropping request")
			}
		}
	}
}

func (s *Server) buildFrame() Frame {
	size := s.pipe.Size()
	cells := s.pipe.Cells()
	frame := Frame{
		Type:     "terrain",
		Stage:    s.pipe.Stage().String(),
		Progress: s.pipe.Progress(),
		Width:    size.W,
		Height:   size.H,
		Cells:    append([]uint8(nil), cells...),
		Rivers:   riversDTO(s.pipe.Rivers()),
		Done:     s.pipe.Done(),
	}
	return frame
}

func riversDTO(rivers []terrain.River) [][]PointDTO {
	if len(rivers) == 0 {
		return nil
	}
	out := make([][]PointDTO, len(rivers))
	for i := range rivers {
		points := rivers[i].Points
		dto := make([]PointDTO, len(points))
		for j := range points {
			p := &points[j]
			dto[j] = PointDTO{
				X:     p.Pos.X,
				Y:     p.Pos.Y,
				Width: p.Width,
				Depth: p.Depth,
				Flow:  p.FlowRate,
			}
		}
		out[i] = dto
	}
	return out
}

func (s *Server) broadcast(frame Frame) {
	s.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
	for conn, mu := range s.clients {
		conns[conn] = mu
	}
	s.mu.Unlock()

	for conn, mu := range conns {
		s.send(conn, mu, frame)
	}
}

func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, frame Frame) {
	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("server: write failed: %v", err)
	}
}
