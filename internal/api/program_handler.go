package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramHandler serves default and custom workout programs.
type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// ScheduleEntryResponse is one exercise slot of a program's days.
type ScheduleEntryResponse struct {
	ID           primitive.ObjectID `json:"id"`
	Exercise     primitive.ObjectID `json:"exercise"`
	ExerciseName string             `json:"exercise_name"`
	Sets         int                `json:"sets"`
	Reps         int                `json:"reps"`
	Weight       int                `json:"weight"`
	LoggedReps   domain.Reps        `json:"logged_reps,omitempty"`
}

// ScheduleResponse nests entries as week -> day -> entries, in schedule order.
type ScheduleResponse = service.OrderedMap[*service.OrderedMap[[]ScheduleEntryResponse]]

// ProgramDetailResponse is a program with its days.
type ProgramDetailResponse struct {
	Program *domain.WorkoutProgram `json:"program"`
	Days    *ScheduleResponse      `json:"days"`
}

func MapScheduleEntryToResponse(e service.ScheduleEntry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		ID:           e.ID,
		Exercise:     e.Exercise,
		ExerciseName: e.ExerciseName,
		Sets:         e.Sets,
		Reps:         e.Reps,
		Weight:       e.Weight,
		LoggedReps:   e.LoggedReps,
	}
}

// MapScheduleToResponse keeps the week and day order of schedule.
func MapScheduleToResponse(schedule *service.Schedule) *ScheduleResponse {
	return service.MapOrdered(schedule, func(week *service.OrderedMap[[]service.ScheduleEntry]) *service.OrderedMap[[]ScheduleEntryResponse] {
		return service.MapOrdered(week, func(entries []service.ScheduleEntry) []ScheduleEntryResponse {
			out := make([]ScheduleEntryResponse, len(entries))
			for i, e := range entries {
				out[i] = MapScheduleEntryToResponse(e)
			}
			return out
		})
	})
}

// MapProgramDetailToResponse converts a service.ProgramDetail to its DTO.
func MapProgramDetailToResponse(detail *service.ProgramDetail) ProgramDetailResponse {
	return ProgramDetailResponse{Program: detail.Program, Days: MapScheduleToResponse(detail.Days)}
}

// DayRequest is one entry of a days payload: an upsert of the row keyed by
// (week, day, exercise), or its removal when delete is true.
type DayRequest struct {
	Week     *int   `json:"week" binding:"required,min=1"`
	Day      *int   `json:"day" binding:"required,min=1,max=7"`
	Exercise string `json:"exercise" binding:"required"`
	Sets     *int   `json:"sets" binding:"required_unless=Delete true,omitempty,min=1"`
	Reps     *int   `json:"reps" binding:"required_unless=Delete true,omitempty,min=1"`
	Weight   *int   `json:"weight" binding:"required_unless=Delete true,omitempty,min=0"`
	Delete   bool   `json:"delete"`
}

// CreateProgramRequest defines the expected JSON for a new custom program.
type CreateProgramRequest struct {
	Name        string       `json:"name" binding:"required,max=32"`
	Length      *int         `json:"length" binding:"required,min=1"`
	Description string       `json:"description" binding:"max=256"`
	Days        []DayRequest `json:"days" binding:"dive"`
}

// ProgramPatchRequest is the body of program copy and update. Absent fields
// keep their value.
type ProgramPatchRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=32"`
	Length      *int         `json:"length" binding:"omitempty,min=1"`
	Description *string      `json:"description" binding:"omitempty,max=256"`
	Days        []DayRequest `json:"days" binding:"dive"`
}

func dayInputs(requests []DayRequest) []service.DayInput {
	days := make([]service.DayInput, len(requests))
	for i, d := range requests {
		days[i] = service.DayInput{
			Week:     *d.Week,
			Day:      *d.Day,
			Exercise: d.Exercise,
			Sets:     derefInt(d.Sets),
			Reps:     derefInt(d.Reps),
			Weight:   derefInt(d.Weight),
			Delete:   d.Delete,
		}
	}
	return days
}

func (r ProgramPatchRequest) patch() service.ProgramPatch {
	return service.ProgramPatch{
		Name:        r.Name,
		Length:      r.Length,
		Description: r.Description,
		Days:        dayInputs(r.Days),
	}
}

// ListPrograms godoc
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param default query bool false "Include default programs"
// @Param custom query bool false "Include my custom programs"
// @Success 200 {object} gin.H "kind -> programs"
// @Router /workout-programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	kinds, err := service.ProgramKindsParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	programs, err := h.programService.ListPrograms(c.Request.Context(), getProfileID(c), kinds)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgram godoc
// @Summary Get a program with its composed schedule
// @Tags Programs
// @Produce json
// @Param id path string true "Program ObjectID Hex"
// @Success 200 {object} ProgramDetailResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /workout-programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	kind, err := service.ProgramKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	detail, err := h.programService.GetProgram(c.Request.Context(), getProfileID(c), kind, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramDetailToResponse(detail))
}

// CreateProgram godoc
// @Summary Create a custom program
// @Tags Programs
// @Accept json
// @Produce json
// @Param program body CreateProgramRequest true "Program with optional days"
// @Success 201 {object} ProgramDetailResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /workout-programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	detail, err := h.programService.CreateProgram(c.Request.Context(), getProfileID(c), service.ProgramInput{
		Name:        req.Name,
		Length:      *req.Length,
		Description: req.Description,
		Days:        dayInputs(req.Days),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramDetailToResponse(detail))
}

// CopyProgram godoc
// @Summary Copy a program into a new custom program
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Source program ObjectID Hex"
// @Param program body ProgramPatchRequest false "Overrides applied to the copy"
// @Success 201 {object} ProgramDetailResponse
// @Router /workout-programs/{id} [post]
func (h *ProgramHandler) CopyProgram(c *gin.Context) {
	kind, err := service.ProgramKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	var req ProgramPatchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	detail, err := h.programService.CopyProgram(c.Request.Context(), getProfileID(c), kind, c.Param("id"), req.patch())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramDetailToResponse(detail))
}

// UpdateProgram godoc
// @Summary Partially update a custom program
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Program ObjectID Hex"
// @Param program body ProgramPatchRequest true "Fields and days to change"
// @Success 200 {object} ProgramDetailResponse
// @Failure 400 {object} gin.H "Validation error or default program"
// @Router /workout-programs/{id} [patch]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	kind, err := service.ProgramKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	var req ProgramPatchRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	detail, err := h.programService.UpdateProgram(c.Request.Context(), getProfileID(c), kind, c.Param("id"), req.patch())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramDetailToResponse(detail))
}

// DeleteProgram godoc
// @Summary Delete a custom program
// @Tags Programs
// @Param id path string true "Program ObjectID Hex"
// @Success 204
// @Router /workout-programs/{id} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	kind, err := service.ProgramKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.programService.DeleteProgram(c.Request.Context(), getProfileID(c), kind, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
