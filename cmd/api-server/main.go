package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"fandomexplorer/internal/comicvine"
	"fandomexplorer/internal/metrics"
	"fandomexplorer/internal/server"
	"fandomexplorer/internal/superhero"
	"fandomexplorer/internal/upstream"
	"fandomexplorer/pkg/logger"
	"fandomexplorer/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: !cfg.IsProduction()})
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if !cfg.ComicVineConfigured() {
		log.Warn("COMICVINE_API_KEY not set, media routes will answer 503")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Superhero
	shUp := upstream.NewClient("superhero", cfg.SuperheroURL(), cfg.UpstreamTimeout, log, m)
	shSvc := superhero.NewService(superhero.NewClient(shUp), log.Named("superhero"), superhero.Options{
		ImageProxy:  cfg.ImageProxyURL,
		FanOutLimit: cfg.FanOutLimit,
		Locale:      cfg.SortLocale,
	})

	// ComicVine
	cvUp := upstream.NewClient("comicvine", cfg.ComicVineBaseURL, cfg.UpstreamTimeout, log, m)
	cvSvc := comicvine.NewService(comicvine.NewClient(cvUp, cfg.ComicVineAPIKey), log.Named("comicvine"), cfg.MediaLimit)

	router := server.New(server.Deps{
		Config:    cfg,
		Log:       log,
		Metrics:   m,
		Superhero: superhero.NewHandler(shSvc, log.Named("superhero")),
		ComicVine: comicvine.NewHandler(cvSvc, log.Named("comicvine")),
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP API server listening", zap.String("addr", httpSrv.Addr), zap.String("env", cfg.Env))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
