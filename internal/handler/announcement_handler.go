package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uniportal/results-portal-api/internal/models"
	"github.com/uniportal/results-portal-api/internal/service"
	appErrors "github.com/uniportal/results-portal-api/pkg/errors"
	"github.com/uniportal/results-portal-api/pkg/response"
)

type announcementService interface {
	Distribute(ctx context.Context, req service.SubmitAnnouncementRequest) (*models.DistributionResult, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, req service.AnnouncementListRequest) ([]models.Announcement, *models.Pagination, error)
}

// AnnouncementHandler exposes the announcement distribution endpoints.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler builds a new handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Submit godoc
// @Summary Submit and distribute an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body service.SubmitAnnouncementRequest true "Announcement draft"
// @Success 201 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Submit(c *gin.Context) {
	var req service.SubmitAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil {
		req.Author = claims.FullName
		if req.Author == "" {
			req.Author = claims.UserID
		}
	}
	result, err := h.service.Distribute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Param audience query string false "Audience selector"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	req := service.AnnouncementListRequest{
		Audience: c.Query("audience"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "page_size"),
	}
	rows, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// Get godoc
// @Summary Get announcement by id
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement id"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcement, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, announcement, nil)
}

func intQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
