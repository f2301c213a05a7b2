package lobby

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-racer/core"
)

// FeedPath is the websocket endpoint
const FeedPath = "/feed"

// Server serves the hub over HTTP
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr and starts serving the hub in the background
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(FeedPath, hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := &Server{
		hub:  hub,
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:   ln,
	}
	hub.Start()
	core.Go(func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("lobby server stopped", "err", err)
		}
	})
	log.Info("lobby feed listening", "addr", ln.Addr().String(), "path", FeedPath)
	return s, nil
}

// Addr returns the bound address
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close stops accepting, closes clients and stops the hub
func (s *Server) Close(ctx context.Context) error {
	s.hub.Stop()
	return s.http.Shutdown(ctx)
}
