package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// CreateProfileRequest defines the expected JSON for creating a profile.
type CreateProfileRequest struct {
	Goal                        string  `json:"goal" binding:"required,max=64"`
	Experience                  string  `json:"experience" binding:"required,max=64"`
	Weight                      *int    `json:"weight" binding:"required,min=0"`
	Height                      *int    `json:"height" binding:"required,min=0"`
	CurrentWorkoutProgram       *string `json:"current_workout_program"`
	CurrentCustomWorkoutProgram *string `json:"current_custom_workout_program"`
}

// UpdateProfileRequest carries a partial update; null clears a program
// selection.
type UpdateProfileRequest struct {
	Goal                        *string    `json:"goal" binding:"omitempty,min=1,max=64"`
	Experience                  *string    `json:"experience" binding:"omitempty,min=1,max=64"`
	Weight                      *int       `json:"weight" binding:"omitempty,min=0"`
	Height                      *int       `json:"height" binding:"omitempty,min=0"`
	CurrentWorkoutProgram       optionalID `json:"current_workout_program"`
	CurrentCustomWorkoutProgram optionalID `json:"current_custom_workout_program"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 "Unauthorized"
// @Failure 403 {object} gin.H "No profile yet"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), getProfileID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile godoc
// @Summary Create my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body CreateProfileRequest true "Profile details"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} gin.H "Validation error or profile already exists"
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), getProfileID(c), service.ProfileInput{
		Goal:                        req.Goal,
		Experience:                  req.Experience,
		Weight:                      *req.Weight,
		Height:                      *req.Height,
		CurrentWorkoutProgram:       deref(req.CurrentWorkoutProgram),
		CurrentCustomWorkoutProgram: deref(req.CurrentCustomWorkoutProgram),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile godoc
// @Summary Partially update my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} gin.H "Validation error"
// @Failure 403 {object} gin.H "No profile yet"
// @Router /profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), getProfileID(c), service.ProfilePatch{
		Goal:                        req.Goal,
		Experience:                  req.Experience,
		Weight:                      req.Weight,
		Height:                      req.Height,
		CurrentWorkoutProgram:       req.CurrentWorkoutProgram.selection(),
		CurrentCustomWorkoutProgram: req.CurrentCustomWorkoutProgram.selection(),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary Delete my profile and everything it owns
// @Tags Profile
// @Success 204
// @Failure 403 {object} gin.H "No profile yet"
// @Router /profile [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profileService.DeleteProfile(c.Request.Context(), getProfileID(c)); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
