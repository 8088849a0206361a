package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniportal/results-portal-api/internal/models"
	"github.com/uniportal/results-portal-api/pkg/response"
)

type activityService interface {
	Recent(ctx context.Context, limit int) ([]models.ActivityRecord, error)
}

// ActivityHandler exposes the operator-facing activity trail.
type ActivityHandler struct {
	service activityService
}

// NewActivityHandler builds a new handler.
func NewActivityHandler(service activityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Recent godoc
// @Summary List recent activity records
// @Tags Activity
// @Produce json
// @Param limit query int false "Max records"
// @Success 200 {object} response.Envelope
// @Router /activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	records, err := h.service.Recent(c.Request.Context(), intQuery(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
