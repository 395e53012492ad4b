// Package server assembles the gin engine: middleware, the api route groups,
// health, metrics and the catch-all handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fandomexplorer/internal/comicvine"
	"fandomexplorer/internal/metrics"
	"fandomexplorer/internal/superhero"
	"fandomexplorer/pkg/models"
	"fandomexplorer/pkg/utils"
)

type Deps struct {
	Config    utils.Config
	Log       *zap.Logger
	Metrics   *metrics.Metrics
	Superhero *superhero.Handler
	ComicVine *comicvine.Handler
}

// HealthStatus is the /api/health payload.
type HealthStatus struct {
	Superhero bool `json:"superhero"`
	ComicVine bool `json:"comicvine"`
}

func New(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	router := gin.New()
	_ = router.SetTrustedProxies(nil)

	router.Use(RequestID(), Recovery(d.Log, d.Config.IsProduction()), Logger(d.Log), CORS())
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := router.Group("/api")
	api.GET("/health", health(d.Config))

	if d.Superhero != nil {
		d.Superhero.RegisterRoutes(api.Group("/superhero"))
	}
	if d.ComicVine != nil {
		d.ComicVine.RegisterRoutes(api.Group("/comicvine"))
	}

	router.NoRoute(NotFound)
	router.NoMethod(NotFound)
	return router
}

func health(cfg utils.Config) gin.HandlerFunc {
	status := HealthStatus{
		Superhero: cfg.SuperheroAPIKey != "",
		ComicVine: cfg.ComicVineConfigured(),
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Envelope{
			Success: true,
			Message: "fandom explorer backend running",
			Data:    status,
		})
	}
}
