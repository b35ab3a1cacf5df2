// CLAUDE:SUMMARY Entry point for the redline server — slog setup, YAML config, audit DB, MCP over stdio, chi HTTP with bcrypt Basic Auth.
// Command redline serves document editing tools over MCP with undo support.
//
// It forwards mutations to a remote document store, records each one in an
// in-memory history, and synthesizes reverse operations on demand. HTTP
// exposes read-only history inspection.
//
// Usage:
//
//	redline -config redline.yaml
//	DOCS_BASE_URL=https://store.example MCP_TRANSPORT=stdio redline
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/redline/audit"
	"github.com/hazyhaar/redline/dbopen"
	"github.com/hazyhaar/redline/docsedit"
	"github.com/hazyhaar/redline/history"
)

func main() {
	configPath := flag.String("config", "", "path to redline.yaml config file")
	logLevel := flag.String("log-level", env("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// Logs go to stderr: stdout is the MCP channel in stdio mode.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath); err != nil {
		logger.Error("redline: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Audit DB.
	auditDB, err := dbopen.Open(cfg.Audit.DBPath, dbopen.WithMkdirAll())
	if err != nil {
		return err
	}
	defer auditDB.Close()

	auditLogger := audit.NewLogger(auditDB)
	if err := auditLogger.Init(); err != nil {
		return err
	}

	// Editor over the remote document store.
	backend := docsedit.NewHTTPBackend(cfg.Docs.BaseURL, cfg.Docs.Token)
	registry := history.NewRegistry(history.Config{
		MaxPerDocument: cfg.History.MaxPerDocument,
		Logger:         logger,
	})
	editor := docsedit.New(backend, registry,
		docsedit.WithLogger(logger),
		docsedit.WithAudit(auditLogger))

	// MCP over stdio.
	if cfg.MCP.Transport == "stdio" {
		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "redline",
			Version: "1.0.0",
		}, nil)
		editor.RegisterMCP(srv)

		go func() {
			logger.Info("MCP stdio starting")
			if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				logger.Error("MCP stdio", "error", err)
			}
		}()
	}

	// HTTP inspection surface.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		if cfg.Auth.PasswordHash != "" {
			r.Use(basicAuth(cfg.Auth.User, cfg.Auth.PasswordHash))
		} else {
			logger.Warn("auth.password_hash not set, inspection endpoints are open")
		}
		editor.RegisterHTTP(r)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func basicAuth(user, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || u != user ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="redline"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
