package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LogHandler serves workout logs and personal records.
type LogHandler struct {
	workoutLogService     service.WorkoutLogService
	personalRecordService service.PersonalRecordService
}

func NewLogHandler(workoutLogService service.WorkoutLogService, personalRecordService service.PersonalRecordService) *LogHandler {
	return &LogHandler{
		workoutLogService:     workoutLogService,
		personalRecordService: personalRecordService,
	}
}

// HistoryPointResponse encodes a history sample as a [timestamp, weight] pair.
type HistoryPointResponse service.HistoryPoint

func (p HistoryPointResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Created.Format(time.RFC3339Nano), p.Weight})
}

func MapHistoryToResponse(points []service.HistoryPoint) []HistoryPointResponse {
	out := make([]HistoryPointResponse, len(points))
	for i, p := range points {
		out[i] = HistoryPointResponse(p)
	}
	return out
}

// WorkoutLogRequest defines the expected JSON for logging a workout day.
type WorkoutLogRequest struct {
	WorkoutDay string `json:"workout_day" binding:"required"`
	Reps       string `json:"reps" binding:"required,reps"`
}

// PersonalRecordRequest defines the expected JSON for setting a record.
type PersonalRecordRequest struct {
	Exercise string `json:"exercise" binding:"required"`
	Weight   *int   `json:"weight" binding:"required,min=0"`
}

// PutWorkoutLog godoc
// @Summary Log a workout day
// @Description Creates or overwrites my log for the day and raises my personal record for its exercise.
// @Tags Workout Logs
// @Accept json
// @Produce json
// @Param default query bool false "Day belongs to a default program"
// @Param custom query bool false "Day belongs to a custom program"
// @Param log body WorkoutLogRequest true "Day and comma separated reps"
// @Success 201 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Validation error"
// @Router /workout-logs [put]
func (h *LogHandler) PutWorkoutLog(c *gin.Context) {
	kind, err := service.ProgramKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	var req WorkoutLogRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	// the reps tag has already rejected anything ParseReps refuses
	reps, _ := domain.ParseReps(req.Reps)
	entry, err := h.workoutLogService.PutWorkoutLog(c.Request.Context(), getProfileID(c), kind, service.WorkoutLogInput{
		WorkoutDay: req.WorkoutDay,
		Reps:       reps,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetHistory godoc
// @Summary Weight history of an exercise
// @Tags Workout Logs
// @Produce json
// @Param id path string true "Exercise ObjectID Hex"
// @Success 200 {array} HistoryPointResponse "[timestamp, weight] pairs"
// @Router /workout-logs/{id} [get]
func (h *LogHandler) GetHistory(c *gin.Context) {
	history, err := h.workoutLogService.History(c.Request.Context(), getProfileID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapHistoryToResponse(history))
}

// ListPersonalRecords godoc
// @Summary My personal records
// @Tags Personal Records
// @Produce json
// @Success 200 {object} gin.H "exercise id -> weight"
// @Router /personal-record [get]
func (h *LogHandler) ListPersonalRecords(c *gin.Context) {
	records, err := h.personalRecordService.ListPersonalRecords(c.Request.Context(), getProfileID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// PutPersonalRecord godoc
// @Summary Set a personal record
// @Description Overwrites the record even when the new weight is lower.
// @Tags Personal Records
// @Accept json
// @Produce json
// @Param record body PersonalRecordRequest true "Exercise and weight"
// @Success 200 {object} domain.PersonalRecord "Updated"
// @Success 201 {object} domain.PersonalRecord "Created"
// @Router /personal-record [put]
func (h *LogHandler) PutPersonalRecord(c *gin.Context) {
	var req PersonalRecordRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	record, outcome, err := h.personalRecordService.PutPersonalRecord(c.Request.Context(), getProfileID(c), service.PersonalRecordInput{
		Exercise: req.Exercise,
		Weight:   *req.Weight,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	status := http.StatusOK
	if outcome == service.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, record)
}
