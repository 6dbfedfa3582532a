package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodLogInput is the body of food log creation.
type FoodLogInput struct {
	Name     string
	Week     int
	Day      int
	Meal     domain.Meal
	Calories int
}

// FoodLogGroups nests logs as week -> day -> meal -> logs.
type FoodLogGroups = OrderedMap[*OrderedMap[*OrderedMap[[]domain.FoodLog]]]

type FoodLogService interface {
	ListFoodLogs(ctx context.Context, profileID string) (*FoodLogGroups, error)
	CreateFoodLog(ctx context.Context, profileID string, input FoodLogInput) (*domain.FoodLog, error)
	DeleteFoodLog(ctx context.Context, profileID, id string) error
}

type foodLogService struct {
	*deps
}

func NewFoodLogService(d Dependencies) FoodLogService {
	return &foodLogService{deps: d.build()}
}

func (s *foodLogService) ListFoodLogs(ctx context.Context, profileID string) (*FoodLogGroups, error) {
	logs, err := s.store.FoodLogs.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}

	groups := NewOrderedMap[*OrderedMap[*OrderedMap[[]domain.FoodLog]]]()
	for _, l := range logs {
		meals := child(child(groups, strconv.Itoa(l.Week)), strconv.Itoa(l.Day))
		items, _ := meals.Get(string(l.Meal))
		meals.Set(string(l.Meal), append(items, l))
	}
	return groups, nil
}

func (s *foodLogService) CreateFoodLog(ctx context.Context, profileID string, input FoodLogInput) (*domain.FoodLog, error) {
	foodLog := &domain.FoodLog{
		ProfileID: profileID,
		Name:      input.Name,
		Week:      input.Week,
		Day:       input.Day,
		Meal:      input.Meal,
		Calories:  input.Calories,
		Created:   s.now(),
	}
	if _, err := s.store.FoodLogs.Create(ctx, foodLog); err != nil {
		return nil, fmt.Errorf("create food log: %w", err)
	}
	return foodLog, nil
}

func (s *foodLogService) DeleteFoodLog(ctx context.Context, profileID, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return ErrNotFound
	}
	foodLog, err := GetOwned(ctx, func(ctx context.Context) (*domain.FoodLog, error) {
		return s.store.FoodLogs.GetByID(ctx, id)
	}, profileID)
	if err != nil {
		return err
	}
	if err := s.store.FoodLogs.Delete(ctx, foodLog.ID); err != nil {
		return fmt.Errorf("delete food log: %w", notFound(err))
	}
	return nil
}
