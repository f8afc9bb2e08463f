package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datafoot/standings-engine/internal/app"
	"github.com/datafoot/standings-engine/internal/config"
	"github.com/datafoot/standings-engine/internal/observability"
	"github.com/datafoot/standings-engine/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.NewJSON(cfg.LogLevel)

	logger, logShutdown, err := observability.InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		baseLogger.Error("init log shipping", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	traceShutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	srv, cleanup, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := cleanup(shutdownCtx); err != nil {
		logger.Error("cleanup failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof server failed", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope failed", "error", err)
	}
	if err := traceShutdown(shutdownCtx); err != nil {
		logger.Error("uptrace shutdown failed", "error", err)
	}
	if err := logShutdown(shutdownCtx); err != nil {
		baseLogger.Error("log shipping shutdown failed", "error", err)
	}

	logger.Info("http server stopped")
}
