package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/api"
	"github.com/parlorchat/parlor/internal/chat"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/handlers"
	"github.com/parlorchat/parlor/internal/session"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Wire the chat engine. Every registry is an owned service object; the
	// dispatcher and router are the only mutation paths.
	presence := chat.NewPresence()
	friends := chat.NewFriendGraph()
	groups := chat.NewGroupRegistry(chat.DefaultGroups())
	history := chat.NewHistoryStore()
	rooms := chat.NewRoomRouter(logger)
	dispatcher := chat.NewDispatcher(logger, presence, friends, groups, history, rooms, cfg.HistoryTail)

	sessions := session.NewManager()
	// A released claim takes its session tokens with it.
	dispatcher.OnRelease(sessions.DestroyIdentity)
	h := handlers.NewHandler(logger, cfg, sessions, dispatcher)
	router := api.NewRouter(logger, h, sessions)

	// Create server. No blanket read/write timeouts: websocket sessions
	// stay open far longer than any sane request timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting Parlor server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
