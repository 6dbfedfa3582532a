package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// MediaRefResponse is the public photo or video attached to an exercise.
type MediaRefResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	DownloadURL string             `json:"download_url"`
}

// ExerciseResponse is a catalog entry; photo and video render as null when
// absent.
type ExerciseResponse struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	PrimaryMuscle string             `json:"primary_muscle"`
	Photo         *MediaRefResponse  `json:"photo"`
	Video         *MediaRefResponse  `json:"video"`
}

func mapMediaRef(m *service.ResolvedMedia) *MediaRefResponse {
	if m == nil {
		return nil
	}
	return &MediaRefResponse{ID: m.ID, Title: m.Title, DownloadURL: m.URL}
}

// MapExerciseToResponse converts a service.ExerciseView to ExerciseResponse DTO.
func MapExerciseToResponse(view *service.ExerciseView) ExerciseResponse {
	if view == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:            view.ID,
		Name:          view.Name,
		PrimaryMuscle: view.PrimaryMuscle,
		Photo:         mapMediaRef(view.Photo),
		Video:         mapMediaRef(view.Video),
	}
}

// MapExercisesToResponse converts a slice of service.ExerciseView to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(views []service.ExerciseView) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(views))
	for i := range views {
		responses[i] = MapExerciseToResponse(&views[i])
	}
	return responses
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ObjectID Hex"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}
