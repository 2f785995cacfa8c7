package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the tabs shown once onboarding is finished.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type SetTabRequest struct {
	Tab domain.Tab `json:"tab" binding:"required"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// view adapts a read-only dashboard operation to a gin handler.
func view[T any](fetch func(ctx context.Context, sessionID string) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		out, err := fetch(c.Request.Context(), id)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *DashboardHandler) Overview() gin.HandlerFunc    { return view(h.dashboardService.Overview) }
func (h *DashboardHandler) Workouts() gin.HandlerFunc    { return view(h.dashboardService.Workouts) }
func (h *DashboardHandler) Nutrition() gin.HandlerFunc   { return view(h.dashboardService.Nutrition) }
func (h *DashboardHandler) Supplements() gin.HandlerFunc { return view(h.dashboardService.Supplements) }
func (h *DashboardHandler) Progress() gin.HandlerFunc    { return view(h.dashboardService.Progress) }
func (h *DashboardHandler) Community() gin.HandlerFunc   { return view(h.dashboardService.Community) }

// SetActiveTab godoc
// @Summary Switch the active dashboard tab
// @Tags Dashboard
// @Security BearerAuth
// @Accept json
// @Param tab body SetTabRequest true "Tab to open"
// @Success 200 {object} SetTabRequest
// @Failure 400 {object} gin.H "Unknown tab"
// @Failure 409 {object} gin.H "Onboarding not finished"
// @Router /dashboard/tab [put]
func (h *DashboardHandler) SetActiveTab(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SetTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.dashboardService.SetActiveTab(c.Request.Context(), id, req.Tab); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// PhotoUploadURL godoc
// @Summary Presigned upload URL for a progress photo
// @Tags Dashboard
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slot path string true "start, week4, week8 or week12"
// @Param body body PhotoUploadRequest true "Image content type"
// @Success 200 {object} service.PresignedPhoto
// @Failure 400 {object} gin.H "Unknown slot or content type"
// @Failure 503 {object} gin.H "Photo storage not configured"
// @Router /dashboard/progress/photos/{slot} [post]
func (h *DashboardHandler) PhotoUploadURL(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	slot := domain.PhotoSlot(c.Param("slot"))
	out, err := h.dashboardService.PhotoUploadURL(c.Request.Context(), id, slot, req.ContentType)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PhotoDownloadURL godoc
// @Summary Presigned download URL for a progress photo
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param slot path string true "start, week4, week8 or week12"
// @Success 200 {object} service.PresignedPhoto
// @Failure 404 {object} gin.H "Nothing uploaded for this slot"
// @Failure 503 {object} gin.H "Photo storage not configured"
// @Router /dashboard/progress/photos/{slot} [get]
func (h *DashboardHandler) PhotoDownloadURL(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	slot := domain.PhotoSlot(c.Param("slot"))
	out, err := h.dashboardService.PhotoDownloadURL(c.Request.Context(), id, slot)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
