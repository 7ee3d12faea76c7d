package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/internal/config"
	"chat-relay/internal/handlers"
	"chat-relay/internal/logger"
	"chat-relay/internal/router"
	"chat-relay/internal/services"
	"chat-relay/internal/web"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Infow("starting chat relay", "env", cfg.Env, "transport", cfg.GeminiTransport, "model", cfg.GeminiModel)

	// ──── Step 2: Initialize Gemini Client ────
	generator := newGenerator(cfg)

	// ──── Step 3: Initialize Handlers ────
	pageHandler, err := handlers.NewPageHandler(web.Site())
	if err != nil {
		logger.Fatal("failed to load embedded page", err)
	}
	chatHandler := handlers.NewChatHandler(services.NewChatService(generator))

	// ──── Step 4: Start HTTP Server ────
	r := router.New(pageHandler, chatHandler, cfg.AllowedOrigin)

	// No WriteTimeout: an upstream call may take as long as it takes.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Fatal("failed to listen", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("chat relay ready on http://localhost:%s", cfg.Port)

	if err := serve(ctx, server, ln, 30*time.Second); err != nil {
		logger.Fatal("server error", err)
	}
	logger.Infow("server stopped")
}

// serve runs server on ln until ctx is done, then drains in-flight requests
// for up to grace. It returns only after Shutdown has returned.
func serve(ctx context.Context, server *http.Server, ln net.Listener, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
		return err
	}

	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newGenerator(cfg *config.Config) services.Generator {
	if cfg.GeminiTransport == config.TransportSDK {
		endpoint := ""
		if cfg.GeminiBaseURL != services.DefaultBaseURL {
			endpoint = cfg.GeminiBaseURL
		}
		return services.NewSDKClient(cfg.GeminiModel, endpoint, cfg.UpstreamTimeout)
	}

	return services.NewRESTClient(
		services.WithBaseURL(cfg.GeminiBaseURL),
		services.WithModel(cfg.GeminiModel),
		services.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
	)
}
