package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"fandomexplorer/internal/comicvine"
	"fandomexplorer/internal/mirror"
	"fandomexplorer/internal/superhero"
	"fandomexplorer/internal/upstream"
	"fandomexplorer/pkg/logger"
	"fandomexplorer/pkg/utils"
)

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	var (
		outPath = flag.String("out", "", "output JSON path (default MIRROR_DATA)")
		ids     = flag.String("ids", "69,70,346", "comma separated superhero api ids")
		names   = flag.String("names", "batman,iron man", "comma separated ComicVine character names")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: !cfg.IsProduction()})
	defer func() { _ = log.Sync() }()

	if *outPath == "" {
		*outPath = cfg.MirrorData
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec := &mirror.Recorder{
		Superhero: superhero.NewClient(upstream.NewClient("superhero", cfg.SuperheroURL(), cfg.UpstreamTimeout, log, nil)),
		ComicVine: comicvine.NewClient(upstream.NewClient("comicvine", cfg.ComicVineBaseURL, cfg.UpstreamTimeout, log, nil), cfg.ComicVineAPIKey),
		Log:       log,
	}

	d, err := rec.Snapshot(ctx, splitList(*ids), splitList(*names))
	if err != nil {
		log.Fatal("snapshot failed", zap.Error(err))
	}
	if err := d.Save(*outPath); err != nil {
		log.Fatal("save failed", zap.Error(err))
	}
	log.Info("mirror data written",
		zap.String("path", *outPath),
		zap.Int("superhero", len(d.Superhero)),
		zap.Int("comicvine", len(d.ComicVine)),
	)
}
