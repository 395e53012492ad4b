package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fandomexplorer/internal/mirror"
	"fandomexplorer/internal/server"
	"fandomexplorer/pkg/logger"
	"fandomexplorer/pkg/utils"
)

// Serves data/mirror.json shaped like both upstreams. Point the api server
// at it with:
//
//	SUPERHERO_BASE_URL=http://localhost:9000/superhero
//	COMICVINE_BASE_URL=http://localhost:9000/comicvine
func main() {
	cfg, err := utils.LoadConfigUnchecked()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: true})
	defer func() { _ = log.Sync() }()

	data, err := mirror.Load(cfg.MirrorData)
	if err != nil {
		log.Fatal("cannot load mirror data", zap.String("path", cfg.MirrorData), zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), server.Logger(log))
	mirror.NewServer(data).RegisterRoutes(router)

	log.Info("mirror-server listening",
		zap.String("addr", cfg.MirrorAddr),
		zap.Int("superhero_records", len(data.Superhero)),
		zap.Int("comicvine_records", len(data.ComicVine)),
	)
	if err := http.ListenAndServe(cfg.MirrorAddr, router); err != nil {
		log.Fatal("mirror-server stopped", zap.Error(err))
	}
}
