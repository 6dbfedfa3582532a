package service

import (
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"time"
)

// Dependencies are shared by every service.
type Dependencies struct {
	Store     repository.Store
	Files     storage.FileStorage
	// Metrics defaults to metrics.NewDiscardManager.
	Metrics   *metrics.Manager
	URLExpiry time.Duration
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

type deps struct {
	store     repository.Store
	files     storage.FileStorage
	metrics   *metrics.Manager
	urlExpiry time.Duration
	now       func() time.Time
}

func (d Dependencies) build() *deps {
	built := &deps{
		store:     d.Store,
		files:     d.Files,
		metrics:   d.Metrics,
		urlExpiry: d.URLExpiry,
		now:       d.Now,
	}
	if built.metrics == nil {
		built.metrics = metrics.NewDiscardManager()
	}
	if built.urlExpiry <= 0 {
		built.urlExpiry = storage.DefaultPresignedURLExpiry
	}
	if built.now == nil {
		built.now = func() time.Time { return time.Now().UTC() }
	}
	return built
}

// Services bundles every service the API needs.
type Services struct {
	Profiles        ProfileService
	Programs        ProgramService
	WorkoutLogs     WorkoutLogService
	PersonalRecords PersonalRecordService
	FoodLogs        FoodLogService
	Media           MediaService
	Exercises       ExerciseService
}

func New(d Dependencies) *Services {
	return &Services{
		Profiles:        NewProfileService(d),
		Programs:        NewProgramService(d),
		WorkoutLogs:     NewWorkoutLogService(d),
		PersonalRecords: NewPersonalRecordService(d),
		FoodLogs:        NewFoodLogService(d),
		Media:           NewMediaService(d),
		Exercises:       NewExerciseService(d),
	}
}
