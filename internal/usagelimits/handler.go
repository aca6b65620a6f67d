package usagelimits

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pathoai-backend/internal/shared/server/respond"
)

// Handler exposes usage limit endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches usage limit routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/modelLimit", h.list)
}

func (h *Handler) list(c *gin.Context) {
	limits, err := h.Svc.List(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch usage limits", nil)
		}
		return
	}

	// An empty collection is a successful empty array, never an error.
	if limits == nil {
		limits = []UsageLimit{}
	}
	respond.JSON(c, http.StatusOK, limits)
}
