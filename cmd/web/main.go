package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/crucial707/feedback-board/internal/auth"
	"github.com/crucial707/feedback-board/internal/config"
	"github.com/crucial707/feedback-board/internal/db"
	"github.com/crucial707/feedback-board/internal/handlers"
	"github.com/crucial707/feedback-board/internal/repo"
	"github.com/crucial707/feedback-board/internal/session"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	userRepo := repo.NewUserRepo(database)
	feedbackRepo := repo.NewFeedbackRepo(database)
	credentials := auth.NewCredentials(userRepo)

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	sessions := session.NewManager(
		[]byte(cfg.SessionSecret),
		time.Duration(cfg.SessionExpireHours)*time.Hour,
		useTLS,
	)

	srv := handlers.NewServer(credentials, userRepo, feedbackRepo, sessions)
	handler := srv.Routes(useTLS)

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr, "env", cfg.Env, "tls", useTLS)

	if useTLS {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
