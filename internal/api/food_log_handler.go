package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FoodLogHandler struct {
	foodLogService service.FoodLogService
}

func NewFoodLogHandler(foodLogService service.FoodLogService) *FoodLogHandler {
	return &FoodLogHandler{foodLogService: foodLogService}
}

// FoodLogRequest defines the expected JSON for logging a meal.
type FoodLogRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	Week     *int   `json:"week" binding:"required,min=1"`
	Day      *int   `json:"day" binding:"required,min=1,max=7"`
	Meal     string `json:"meal" binding:"required,meal"`
	Calories *int   `json:"calories" binding:"required,min=0"`
}

// FoodLogItemResponse is how a log appears inside the grouped listing.
type FoodLogItemResponse struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Created  time.Time          `json:"created"`
	Calories int                `json:"calories"`
}

// FoodLogGroupsResponse nests logs as week -> day -> meal -> logs.
type FoodLogGroupsResponse = service.OrderedMap[*service.OrderedMap[*service.OrderedMap[[]FoodLogItemResponse]]]

// MapFoodLogGroupsToResponse keeps the week, day and meal order of groups.
func MapFoodLogGroupsToResponse(groups *service.FoodLogGroups) *FoodLogGroupsResponse {
	return service.MapOrdered(groups, func(days *service.OrderedMap[*service.OrderedMap[[]domain.FoodLog]]) *service.OrderedMap[*service.OrderedMap[[]FoodLogItemResponse]] {
		return service.MapOrdered(days, func(meals *service.OrderedMap[[]domain.FoodLog]) *service.OrderedMap[[]FoodLogItemResponse] {
			return service.MapOrdered(meals, func(logs []domain.FoodLog) []FoodLogItemResponse {
				items := make([]FoodLogItemResponse, len(logs))
				for i, l := range logs {
					items[i] = FoodLogItemResponse{ID: l.ID, Name: l.Name, Created: l.Created, Calories: l.Calories}
				}
				return items
			})
		})
	})
}

// ListFoodLogs godoc
// @Summary My food logs grouped by week, day and meal
// @Tags Food Logs
// @Produce json
// @Success 200 {object} gin.H
// @Router /food-logs [get]
func (h *FoodLogHandler) ListFoodLogs(c *gin.Context) {
	groups, err := h.foodLogService.ListFoodLogs(c.Request.Context(), getProfileID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapFoodLogGroupsToResponse(groups))
}

// CreateFoodLog godoc
// @Summary Log a meal
// @Tags Food Logs
// @Accept json
// @Produce json
// @Param log body FoodLogRequest true "Meal details"
// @Success 201 {object} domain.FoodLog
// @Failure 400 {object} gin.H "Validation error"
// @Router /food-logs [post]
func (h *FoodLogHandler) CreateFoodLog(c *gin.Context) {
	var req FoodLogRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	foodLog, err := h.foodLogService.CreateFoodLog(c.Request.Context(), getProfileID(c), service.FoodLogInput{
		Name:     req.Name,
		Week:     *req.Week,
		Day:      *req.Day,
		Meal:     domain.Meal(req.Meal),
		Calories: *req.Calories,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, foodLog)
}

// DeleteFoodLog godoc
// @Summary Delete one of my food logs
// @Tags Food Logs
// @Param id path string true "Food log ObjectID Hex"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /food-logs/{id} [delete]
func (h *FoodLogHandler) DeleteFoodLog(c *gin.Context) {
	if err := h.foodLogService.DeleteFoodLog(c.Request.Context(), getProfileID(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
