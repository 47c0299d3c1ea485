package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type Server struct {
	Engine *gin.Engine
	srv    *nethttp.Server
	log    *logger.Logger
}

func NewServer(cfg RouterConfig, addr string) *Server {
	engine := NewRouter(cfg)
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg.Log != nil {
		srv.ErrorLog = cfg.Log.StdLog()
	}
	return &Server{Engine: engine, srv: srv, log: cfg.Log}
}

// Serve accepts connections on ln until Shutdown. A clean shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	if s == nil || s.srv == nil {
		return fmt.Errorf("server not initialized")
	}
	if s.log != nil {
		s.log.Info("HTTP server listening", "addr", ln.Addr().String())
	}
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
