// Package server hosts the Hungie HTTP API. It owns the SQLite store's
// lifecycle, the loaded rulesets, and the optional inbox watcher.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/config"
	"github.com/yeschef/hungie/internal/extract"
	"github.com/yeschef/hungie/internal/home"
	"github.com/yeschef/hungie/internal/inbox"
	"github.com/yeschef/hungie/internal/ruleset"
	"github.com/yeschef/hungie/internal/server/endpoints"
	"github.com/yeschef/hungie/internal/store"
	"github.com/yeschef/hungie/internal/svcctx"
)

// Server is the main Hungie HTTP server.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	homeDir    *home.Dir
	logger     *slog.Logger

	store    *store.Store
	rulesets *ruleset.Store

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Home is the application home directory
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		return nil, errors.New("home directory is required")
	}

	s := &Server{
		configMgr: cfg.ConfigManager,
		homeDir:   cfg.Home,
		logger:    cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // Synchronous extraction runs are slow
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.homeDir.EnsureExists(); err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to prepare home directory: %w", err)
	}

	conf := s.configMgr.Get()

	// Open the store
	dbPath := conf.Extract.DatabasePath
	if dbPath == "" {
		dbPath = s.homeDir.DatabasePath()
	}
	st, err := store.Open(dbPath, s.logger)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to open store: %w", err)
	}
	s.store = st
	s.logger.Info("store ready", "path", st.Path())

	// Load rulesets: built-in default plus any in the home directory
	s.rulesets = ruleset.NewStore()
	if err := s.rulesets.LoadDir(s.homeDir.RulesetsPath()); err != nil {
		_ = s.shutdown()
		return fmt.Errorf("failed to load rulesets: %w", err)
	}
	s.logger.Info("rulesets loaded", "names", s.rulesets.Names())

	// Create services struct for context enrichment
	s.services = &svcctx.Services{
		Store:     s.store,
		Rulesets:  s.rulesets,
		ConfigMgr: s.configMgr,
		Home:      s.homeDir,
		Logger:    s.logger,
	}

	// Watch the inbox unless disabled
	inboxCtx, stopInbox := context.WithCancel(ctx)
	defer stopInbox()
	if conf.Inbox.Enabled {
		if err := s.startInbox(inboxCtx, conf); err != nil {
			_ = s.shutdown()
			return fmt.Errorf("failed to start inbox watcher: %w", err)
		}
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// startInbox wires the inbox watcher to the extraction pipeline and runs
// it in a goroutine.
func (s *Server) startInbox(ctx context.Context, conf *config.Config) error {
	settle := time.Duration(conf.Inbox.SettleSeconds) * time.Second
	watcher, err := inbox.New(inbox.Config{
		Dir:       s.homeDir.InboxPath(),
		DoneDir:   s.homeDir.InboxDonePath(),
		FailedDir: s.homeDir.InboxFailedPath(),
		Settle:    settle,
		Logger:    s.logger,
		Run: func(runCtx context.Context, pdfPath string) error {
			name := s.configMgr.Get().Extract.DefaultRuleset
			rules, ok := s.rulesets.Get(name)
			if !ok {
				return fmt.Errorf("unknown default ruleset: %s", name)
			}
			p := extract.New(s.store, rules, s.logger)
			stats, err := p.Run(runCtx, pdfPath, extract.Options{})
			if err != nil {
				return err
			}
			s.logger.Info("inbox extraction finished",
				"pdf", pdfPath,
				"recipes", stats.RecipesPersisted)
			return nil
		},
	})
	if err != nil {
		return err
	}

	go func() {
		if err := watcher.Start(ctx); err != nil {
			s.logger.Error("inbox watcher stopped", "error", err)
		}
	}()
	s.logger.Info("inbox watcher started", "dir", s.homeDir.InboxPath())
	return nil
}

// shutdown performs graceful shutdown of the HTTP server and the store.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("store close error", "error", err)
		}
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Store returns the recipe store. Returns nil before Start.
func (s *Server) Store() *store.Store {
	return s.store
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the store is open.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
