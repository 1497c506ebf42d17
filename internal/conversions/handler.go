package conversions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/shared/server/respond"
)

// Handler exposes the ledger over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches ledger routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/conversions", h.list)
}

type listResponse struct {
	Items []Conversion `json:"items"`
	Limit int          `json:"limit"`
}

func (h *Handler) list(c *gin.Context) {
	limit := DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	limit = ClampLimit(limit)

	items, err := h.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list conversions")
		return
	}
	if items == nil {
		items = []Conversion{}
	}
	respond.OK(c, listResponse{Items: items, Limit: limit})
}
