package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server exposes /metrics over plain HTTP.
type Server struct {
	srv    *http.Server
	lis    net.Listener
	logger *zap.Logger
}

// NewServer listens on port. Port 0 picks a free port.
func NewServer(port int, m *Metrics, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		lis:    lis,
		logger: logger.Named("metrics-server"),
	}, nil
}

// Start serves in a goroutine and returns immediately.
func (s *Server) Start() {
	s.logger.Info("metrics server starting", zap.String("addr", s.lis.Addr().String()))
	go func() {
		if err := s.srv.Serve(s.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops accepting scrapes and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr returns the listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
