package analyses

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pathoai-backend/internal/shared/server/respond"
	"pathoai-backend/internal/usagelimits"
)

const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/analyze", h.analyze)
	r.GET("/history", h.history)
	r.POST("/feedback", h.feedback)
}

func (h *Handler) analyze(c *gin.Context) {
	file, err := c.FormFile("slideImage")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "slideImage file is required", nil)
		return
	}
	if file.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "slideImage exceeds maximum size", nil)
		return
	}
	organ := strings.TrimSpace(c.PostForm("organ"))
	if organ == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "organ is required", nil)
		return
	}
	clinicalContext := strings.TrimSpace(c.PostForm("clinicalContext"))
	if clinicalContext == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "clinicalContext is required", nil)
		return
	}
	model := strings.TrimSpace(c.PostForm("model"))
	if model != usagelimits.TierJR && model != usagelimits.TierSR {
		respond.Error(c, http.StatusBadRequest, "validation_error", "model must be JR or SR", nil)
		return
	}
	c.Set("model", model)

	src, err := file.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read slideImage", nil)
		return
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read slideImage", nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), AnalyzeRequest{
		ImageBase64:     base64.StdEncoding.EncodeToString(content),
		Organ:           organ,
		ClinicalContext: clinicalContext,
		Model:           model,
	})
	if err != nil {
		switch {
		case errors.Is(err, usagelimits.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", model+" model usage limit exceeded for today", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.JSON(c, http.StatusOK, analysis)
}

func (h *Handler) history(c *gin.Context) {
	records, err := h.Svc.History(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		}
		return
	}
	if records == nil {
		records = []Analysis{}
	}
	respond.JSON(c, http.StatusOK, records)
}

type feedbackRequest struct {
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

func (h *Handler) feedback(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Query("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid feedback body", nil)
		return
	}

	err := h.Svc.SubmitFeedback(c.Request.Context(), analysisID, Feedback{Rating: req.Rating, Notes: req.Notes})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid analysis id format", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit feedback", nil)
		}
		return
	}

	c.Set("analysisId", analysisID)
	respond.JSON(c, http.StatusOK, gin.H{
		"id":     analysisID,
		"rating": req.Rating,
		"notes":  req.Notes,
	})
}
