package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"fandomexplorer/internal/superhero"
	"fandomexplorer/internal/upstream"
	"fandomexplorer/pkg/logger"
	"fandomexplorer/pkg/utils"
)

func main() {
	outPath := flag.String("out", "data/characters.csv", "output CSV path for the character listing")
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: !cfg.IsProduction()})
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	up := upstream.NewClient("superhero", cfg.SuperheroURL(), cfg.UpstreamTimeout, log, nil)
	svc := superhero.NewService(superhero.NewClient(up), log, superhero.Options{
		ImageProxy:  cfg.ImageProxyURL,
		FanOutLimit: cfg.FanOutLimit,
		Locale:      cfg.SortLocale,
	})

	items, err := svc.ListAll(ctx)
	if err != nil {
		log.Fatal("listing failed", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal("mkdir failed", zap.Error(err))
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal("create failed", zap.Error(err))
	}
	defer f.Close()

	if err := superhero.WriteCSV(f, items); err != nil {
		log.Fatal("write csv failed", zap.Error(err))
	}
	log.Info("exported characters", zap.String("path", *outPath), zap.Int("count", len(items)))
}
