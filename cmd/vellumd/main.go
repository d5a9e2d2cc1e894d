// Command vellumd serves the drawing engine over WebSocket. Each
// connection gets its own document, engine and undo history; requests
// and responses are the engine's JSON command envelopes, one per text
// message.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gogpu/vellum"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Sessions are isolated per connection, so cross-origin editors
	// can only talk to their own document.
	CheckOrigin: func(*http.Request) bool { return true },
}

func main() {
	var (
		addr    = flag.String("addr", "localhost:8080", "listen address")
		width   = flag.Float64("width", 800, "artboard width")
		height  = flag.Float64("height", 600, "artboard height")
		history = flag.Int("history", 100, "undo history depth, 0 for unbounded")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	vellum.SetLogger(logger)

	srv := &server{
		logger:       logger,
		artboardW:    *width,
		artboardH:    *height,
		historyLimit: *history,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/session", srv.session)

	logger.Info("listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type server struct {
	logger       *slog.Logger
	artboardW    float64
	artboardH    float64
	historyLimit int
}

// session upgrades the connection and runs the request loop until the
// client goes away.
func (s *server) session(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := s.logger.With("session", id)
	logger.Info("session open", "remote", r.RemoteAddr)
	start := time.Now()

	eng := vellum.NewEngine(
		vellum.WithArtboard(s.artboardW, s.artboardH, vellum.White),
		vellum.WithHistoryLimit(s.historyLimit),
	)

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", "err", err)
			}
			break
		}
		if kind != websocket.TextMessage {
			continue
		}
		resp := eng.HandleRequest(msg)
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			logger.Warn("write failed", "err", err)
			break
		}
	}

	logger.Info("session closed", "dur", time.Since(start), "objects", eng.Doc().Count())
}
