package main

import (
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"chatrelay/internal/config"
	"chatrelay/internal/handlers"
	"chatrelay/internal/http"
	"chatrelay/internal/llm"
	"chatrelay/internal/service"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(newLogger(cfg))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	if cfg.UpstreamTimeout == 0 {
		slog.Warn("Upstream calls have no timeout; set UPSTREAM_TIMEOUT to bound them")
	}

	// The client carries no key of its own; every call uses the caller's
	upstream := llm.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
	relayService := service.NewRelayService(upstream)

	home, err := handlers.NewHomeHandler()
	if err != nil {
		log.Fatalf("Failed to render landing page: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		RelayService: relayService,
		HomeHandler:  home,
	})

	server := &nethttp.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printStartupBanner(cfg)
	slog.Info("Starting API server", "addr", server.Addr, "upstream", cfg.UpstreamURL, "model", llm.Model)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// newLogger configures structured logging with configurable level and format.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Chat relay\n")
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Local:      http://localhost:%s\n", cfg.Port)
	fmt.Fprintf(os.Stderr, "Health:     http://localhost:%s/health\n", cfg.Port)
	fmt.Fprintf(os.Stderr, "Security:   requires client API keys (x-api-key), none stored\n")
	fmt.Fprintf(os.Stderr, "Started:    %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
