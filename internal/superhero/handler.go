package superhero

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fandomexplorer/internal/respond"
)

const msgNotFound = "character not found"

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
	rg.GET("/characters", h.listAll) // GET /api/superhero/characters
	rg.GET("/all", h.listAll)        // GET /api/superhero/all
	rg.GET("/search/:name", h.search)
	rg.GET("/character/:id", h.getByID)
	for _, f := range Fields {
		rg.GET("/character/:id/"+f, h.getField(f))
	}
}

func (h *Handler) listAll(c *gin.Context) {
	chars, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, "list characters", err)
		return
	}
	h.Log.Info("characters listed", zap.Int("total", len(chars)))
	respond.List(c, chars)
}

func (h *Handler) search(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "name is required")
		return
	}

	chars, err := h.Service.Search(c.Request.Context(), name)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		// fixed message, whatever the upstream said
		respond.Error(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	respond.OK(c, chars)
}

func (h *Handler) getByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	detail, err := h.Service.Character(c.Request.Context(), id)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		h.Log.Warn("character not found upstream", zap.String("id", id), zap.String("upstream_error", nf.Message))
		respond.Error(c, http.StatusNotFound, nf.Error())
		return
	}
	if err != nil {
		h.fail(c, "get character", err)
		return
	}
	respond.OK(c, detail)
}

func (h *Handler) getField(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))

		data, err := h.Service.Field(c.Request.Context(), id, field)
		var nf *NotFoundError
		if errors.As(err, &nf) {
			respond.Error(c, http.StatusNotFound, nf.Error())
			return
		}
		if err != nil {
			h.fail(c, "get "+field, err)
			return
		}
		respond.OK(c, data)
	}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.Log.Error(op+" failed", zap.Error(err))
	_ = c.Error(err)
	respond.Error(c, http.StatusInternalServerError, err.Error())
}
