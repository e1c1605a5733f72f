package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/gridstore/network-store/api/v1"
	"github.com/gridstore/network-store/internal/config"
)

const apiPrefix = "/api/v1"

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the gin engine. registerHandlerFn receives the /api/v1 group.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	if cfg.Server.HTTPPort <= 0 {
		return nil, fmt.Errorf("invalid http port %d", cfg.Server.HTTPPort)
	}
	if cfg.Server.ServerMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := zap.L().Named("http")
	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	registerHandlerFn(engine.Group(apiPrefix))

	engine.NoRoute(func(c *gin.Context) {
		status := http.StatusNotFound
		msg := "route not found"
		if !strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			msg = "only " + apiPrefix + " is served"
		}
		c.JSON(status, v1.Error{Status: status, Error: http.StatusText(status), Message: msg, Path: c.Request.URL.Path})
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the router, for serving it without listening.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. It returns http.ErrServerClosed after Stop.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	zap.S().Named("http").Infow("server listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Stop shuts the server down gracefully, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
