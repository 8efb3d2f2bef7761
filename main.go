package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/pkg/config"
	"github.com/FACorreiaa/hmhy-portal/internal/pkg/logger"
	"github.com/FACorreiaa/hmhy-portal/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel),
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.AppEnv),
	); err != nil {
		return err
	}
	l := logger.L()
	defer func() { _ = l.Sync() }()

	// Providers come first so every instrument binds to the real meter.
	otelShutdown, err := server.InitObservability(cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, l)
	if err != nil {
		return err
	}
	defer srv.Close()

	router := srv.SetupRouter()
	server.SetupAssets(router)
	srv.SetRouter(router)

	pprofServer := server.StartPprofServer(cfg.Observability.PprofAddr, l)
	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go server.GracefulShutdown(l, done, httpServer, pprofServer)

	l.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("api", cfg.API.BaseURL),
		zap.String("session_driver", cfg.Session.Driver))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	l.Info("Graceful shutdown complete")
	return nil
}
