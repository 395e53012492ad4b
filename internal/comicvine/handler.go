package comicvine

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fandomexplorer/internal/respond"
	"fandomexplorer/pkg/models"
)

type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/character/:name/media", h.media) // GET /api/comicvine/character/:name/media
}

func (h *Handler) media(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		respond.ErrorWithData(c, http.StatusBadRequest, "name is required", models.EmptyMedia())
		return
	}

	bundle, err := h.Service.Media(c.Request.Context(), name)
	switch {
	case errors.Is(err, ErrNotConfigured):
		respond.ErrorWithData(c, http.StatusServiceUnavailable, err.Error(), bundle)
	case err != nil:
		h.Log.Error("media lookup failed", zap.String("name", name), zap.Error(err))
		_ = c.Error(err)
		respond.ErrorWithData(c, http.StatusInternalServerError, err.Error(), bundle)
	default:
		respond.OK(c, bundle)
	}
}
