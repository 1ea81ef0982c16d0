package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api"
	"github.com/umuturukk/de-propulsion-v2.0/internal/api/handlers"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/data"
	"github.com/umuturukk/de-propulsion-v2.0/internal/logging"
	"github.com/umuturukk/de-propulsion-v2.0/internal/metrics"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
	cleanupInterval         = 5 * time.Minute
)

func main() {
	srvCfg, err := config.NewServer()
	if err != nil {
		panic(err)
	}

	logger, flush := logging.Setup(srvCfg.LogLevel)
	defer flush()
	log := zap.S().Named("api")

	project, err := srvCfg.Project()
	if err != nil {
		log.Fatalw("failed to load project config", "file", srvCfg.ConfigFile, "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	runs := data.NewRunStore(srvCfg.RunTTL)
	runs.StartCleanup(ctx, cleanupInterval)

	opts := handlers.BackendOptions{
		CurveDir: srvCfg.CurveDir,
		Workers:  srvCfg.SweepWorkers,
		Runs:     runs,
		Observer: metrics.ObserveDecision,
		OnSweep:  metrics.ObserveSweep,
	}
	if srvCfg.EnableResultCache {
		opts.Wrap = func(s combination.Selector) combination.Selector {
			cache := data.NewSelectorCache(s, srvCfg.ResultCacheTTL)
			cache.StartCleanup(ctx, cleanupInterval)
			return cache
		}
	}
	backend, err := handlers.NewBackend(project, opts)
	if err != nil {
		log.Fatalw("failed to build optimizer backend", "error", err)
	}

	if srvCfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	metricMiddleware := metrics.NewMiddleware("api")
	metricMiddleware.MustRegisterDefault()

	router := api.NewRouter(backend, api.RouterOptions{
		Logger:    logger,
		Metrics:   metricMiddleware,
		StaticDir: srvCfg.StaticDir,
	})

	srv := http.Server{Addr: ":" + srvCfg.Port, Handler: router}
	go func() {
		<-ctx.Done()
		log.Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		log.Info("api server terminated")
	}()

	log.Infow("starting API server",
		"addr", srv.Addr,
		"env", srvCfg.Env,
		"fleet", project.Fleet.Label(),
		"curve_dir", srvCfg.CurveDir,
		"result_cache", srvCfg.EnableResultCache)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("failed to start server", "error", err)
	}
}
