package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alan-mat/deepresearch/internal/research"
	"github.com/alan-mat/deepresearch/internal/storage"
	"github.com/alan-mat/deepresearch/internal/transport"
	"github.com/gin-gonic/gin"
)

const TraceHeader = "X-Trace-Id"

type ServerConfig struct {
	ListenHost string
	ListenPort int
}

func DefaultConfig() ServerConfig {
	return ServerConfig{
		ListenPort: 8000,
	}
}

// Runner executes the research pipeline for a single query.
type Runner interface {
	Run(ctx context.Context, query string) (*research.State, error)
}

type Server struct {
	config ServerConfig

	pipeline  Runner
	store     storage.Store
	transport transport.Transport

	engine *gin.Engine
}

func New(config ServerConfig, pipeline Runner, store storage.Store, t transport.Transport) *Server {
	if t == nil {
		t = transport.NewMemoryTransport()
	}

	s := &Server{
		config:    config,
		pipeline:  pipeline,
		store:     store,
		transport: t,
	}

	engine := gin.New()
	engine.Use(requestLogger(), gin.CustomRecovery(recoverInternal))
	engine.POST("/research", s.research)
	engine.GET("/traces/:id", s.trace)
	s.engine = engine

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.ListenHost, s.config.ListenPort)
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "listener", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("failed to serve", "err", err)
		return err
	case <-ctx.Done():
		slog.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
