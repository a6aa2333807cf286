package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/loykin/audiofetch/internal/common"
	"github.com/loykin/audiofetch/internal/config"
	"github.com/loykin/audiofetch/internal/credential"
	"github.com/loykin/audiofetch/internal/fetcher"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the MCP endpoint and the liveness endpoint on one listener.
type Server struct {
	cfg        *config.Config
	router     *credential.Router
	fetcher    *fetcher.Fetcher
	mcp        *mcpserver.MCPServer
	engine     *gin.Engine
	httpServer *http.Server
}

// New wires the tool server: MCP server with both tools registered, mounted
// at /mcp on a gin engine alongside GET /health.
func New(cfg *config.Config, router *credential.Router) *Server {
	s := &Server{
		cfg:     cfg,
		router:  router,
		fetcher: fetcher.New(router),
	}

	s.mcp = mcpserver.NewMCPServer(
		config.ServerName,
		config.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcp)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/health", s.healthHandler)
	engine.Any("/mcp", gin.WrapH(streamable))

	s.engine = engine
	s.httpServer = &http.Server{
		Addr:    cfg.Addr(),
		Handler: engine,
		// No WriteTimeout: a download tool call may legitimately take the
		// whole fetch timeout before the response starts.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Start runs the HTTP server until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	logger := common.GetLogger().WithComponent("server")
	logger.Info("starting server", "addr", s.cfg.Addr())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
			return
		}
		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.Stop(context.Background())
	}
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	logger := common.GetLogger().WithComponent("server")
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// healthHandler reports liveness plus the advertised tool set.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   config.ServerName,
		"version":   config.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"tools":     []string{toolDownloadAudio, toolGetServerConfig},
	})
}
