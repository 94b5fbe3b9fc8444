package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"fininclusion/internal/app"
	"fininclusion/internal/config"
	"fininclusion/internal/handlers"
	"fininclusion/internal/jobs"
	"fininclusion/internal/logging"
	"fininclusion/internal/metrics"
	"fininclusion/internal/server"
	"fininclusion/internal/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	// Load artifacts. The server never starts with a partial set.
	rt, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to load prediction runtime", "error", err)
		os.Exit(1)
	}
	defer rt.Close()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewArtifactCollector(rt.Artifacts),
	)
	recorder := metrics.NewRecorder(reg)

	predictor := service.NewPredictor(rt.Pipeline, rt.Form, recorder, rt.Artifacts.ModelVersion)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	var probe handlers.Pinger
	if rt.DB != nil {
		probe = rt.DB
		watcher := jobs.NewStoreWatcher(rt.DB, rt.Artifacts.Versions, cfg.ArtifactWatchInterval, reg)
		go watcher.Start(watchCtx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(predictor, probe, reg)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
