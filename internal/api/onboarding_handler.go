package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OnboardingHandler serves the five-step wizard.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// UpdateProfileRequest holds the fields of one wizard step. Absent fields are
// left unchanged. Numbers are not range checked.
type UpdateProfileRequest struct {
	Name         *string            `json:"name"`
	Age          *float64           `json:"age"`
	Weight       *float64           `json:"weight"`
	Height       *float64           `json:"height"`
	Gender       *domain.Gender     `json:"gender"`
	Experience   *domain.Experience `json:"experience"`
	Goal         *domain.Goal       `json:"goal"`
	Frequency    *int               `json:"frequency"`
	Restrictions *[]string          `json:"restrictions"`
	Equipment    *[]string          `json:"equipment"`
}

func (r UpdateProfileRequest) patch() service.ProfilePatch {
	return service.ProfilePatch{
		Name:         r.Name,
		Age:          r.Age,
		Weight:       r.Weight,
		Height:       r.Height,
		Gender:       r.Gender,
		Experience:   r.Experience,
		Goal:         r.Goal,
		Frequency:    r.Frequency,
		Restrictions: r.Restrictions,
		Equipment:    r.Equipment,
	}
}

// GetState godoc
// @Summary Current onboarding step
// @Tags Onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.OnboardingState
// @Failure 401 {object} gin.H "Unknown or expired session"
// @Router /onboarding [get]
func (h *OnboardingHandler) GetState(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.onboardingService.GetState(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateProfile godoc
// @Summary Merge profile fields
// @Tags Onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to set"
// @Success 200 {object} service.OnboardingState
// @Failure 400 {object} gin.H "Malformed body or unknown enum value"
// @Failure 409 {object} gin.H "Onboarding already finished"
// @Router /onboarding/profile [patch]
func (h *OnboardingHandler) UpdateProfile(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	state, err := h.onboardingService.UpdateProfile(c.Request.Context(), id, req.patch())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Next godoc
// @Summary Advance one step, finishing on the last one
// @Tags Onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.OnboardingState
// @Failure 409 {object} gin.H "Onboarding already finished"
// @Router /onboarding/next [post]
func (h *OnboardingHandler) Next(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.onboardingService.Next(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Back godoc
// @Summary Go back one step
// @Tags Onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.OnboardingState
// @Failure 409 {object} gin.H "Onboarding already finished"
// @Router /onboarding/back [post]
func (h *OnboardingHandler) Back(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.onboardingService.Back(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Options returns the selectable values of every wizard field.
func (h *OnboardingHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.onboardingService.Options())
}
