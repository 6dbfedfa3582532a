package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutDayRepository struct{ db *DB }

func (r *workoutDayRepository) GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	var (
		day domain.WorkoutDay
		ok  bool
	)
	r.db.read(ctx, func(s *state) { day, ok = s.days[kind][id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &day, nil
}

func findDayByKey(s *state, kind domain.ProgramKind, programID primitive.ObjectID, key domain.DayKey) (domain.WorkoutDay, bool) {
	for _, day := range s.days[kind] {
		if day.ProgramID == programID && day.Key() == key {
			return day, true
		}
	}
	return domain.WorkoutDay{}, false
}

func (r *workoutDayRepository) FindByKey(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID, key domain.DayKey) (*domain.WorkoutDay, error) {
	var found *domain.WorkoutDay
	r.db.read(ctx, func(s *state) {
		if day, ok := findDayByKey(s, kind, programID, key); ok {
			found = &day
		}
	})
	return found, nil
}

func (r *workoutDayRepository) ListByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	days := []domain.WorkoutDay{}
	r.db.read(ctx, func(s *state) {
		for _, day := range s.days[kind] {
			if day.ProgramID == programID {
				days = append(days, day)
			}
		}
	})
	sort.Slice(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return lessID(a.ID, b.ID)
	})
	return days, nil
}

func (r *workoutDayRepository) Upsert(ctx context.Context, day *domain.WorkoutDay) error {
	if day.ProgramID == primitive.NilObjectID || day.ExerciseID == primitive.NilObjectID {
		return errors.New("workout day requires a program and an exercise")
	}
	return r.db.write(ctx, func(s *state) error {
		if stored, ok := findDayByKey(s, day.Kind, day.ProgramID, day.Key()); ok {
			stored.Sets = day.Sets
			stored.Reps = day.Reps
			stored.Weight = day.Weight
			s.days[day.Kind][stored.ID] = stored
			day.ID = stored.ID
			return nil
		}
		day.ID = primitive.NewObjectID()
		s.days[day.Kind][day.ID] = *day
		return nil
	})
}

func (r *workoutDayRepository) Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.days[kind][id]; !ok {
			return repository.ErrNotFound
		}
		delete(s.days[kind], id)
		return nil
	})
}

func (r *workoutDayRepository) DeleteByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	err := r.db.write(ctx, func(s *state) error {
		for id, day := range s.days[kind] {
			if day.ProgramID == programID {
				ids = append(ids, id)
				delete(s.days[kind], id)
			}
		}
		return nil
	})
	return ids, err
}

func (r *workoutDayRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for id, day := range s.days[domain.ProgramCustom] {
			if day.ProfileID == profileID {
				delete(s.days[domain.ProgramCustom], id)
			}
		}
		return nil
	})
}

type workoutLogRepository struct{ db *DB }

func findLog(s *state, kind domain.ProgramKind, profileID string, dayID primitive.ObjectID) (domain.WorkoutLog, bool) {
	for _, l := range s.logs[kind] {
		if l.ProfileID == profileID && l.WorkoutDayID != nil && *l.WorkoutDayID == dayID {
			return l, true
		}
	}
	return domain.WorkoutLog{}, false
}

func (r *workoutLogRepository) Find(ctx context.Context, kind domain.ProgramKind, profileID string, dayID primitive.ObjectID) (*domain.WorkoutLog, error) {
	var found *domain.WorkoutLog
	r.db.read(ctx, func(s *state) {
		if l, ok := findLog(s, kind, profileID, dayID); ok {
			found = &l
		}
	})
	return found, nil
}

func (r *workoutLogRepository) Upsert(ctx context.Context, workoutLog *domain.WorkoutLog) error {
	if workoutLog.ProfileID == "" || workoutLog.WorkoutDayID == nil {
		return errors.New("workout log requires a profile and a workout day")
	}
	return r.db.write(ctx, func(s *state) error {
		if stored, ok := findLog(s, workoutLog.Kind, workoutLog.ProfileID, *workoutLog.WorkoutDayID); ok {
			workoutLog.ID = stored.ID
		} else {
			workoutLog.ID = primitive.NewObjectID()
		}
		stored := *workoutLog
		stored.Reps = append(domain.Reps(nil), workoutLog.Reps...)
		s.logs[workoutLog.Kind][workoutLog.ID] = stored
		return nil
	})
}

func (r *workoutLogRepository) list(ctx context.Context, kind domain.ProgramKind, match func(domain.WorkoutLog) bool) []domain.WorkoutLog {
	logs := []domain.WorkoutLog{}
	r.db.read(ctx, func(s *state) {
		for _, l := range s.logs[kind] {
			if match(l) {
				logs = append(logs, l)
			}
		}
	})
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].Created.Equal(logs[j].Created) {
			return logs[i].Created.Before(logs[j].Created)
		}
		return lessID(logs[i].ID, logs[j].ID)
	})
	return logs
}

func (r *workoutLogRepository) ListByDays(ctx context.Context, kind domain.ProgramKind, profileID string, dayIDs []primitive.ObjectID) ([]domain.WorkoutLog, error) {
	wanted := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		wanted[id] = true
	}
	return r.list(ctx, kind, func(l domain.WorkoutLog) bool {
		return l.ProfileID == profileID && l.WorkoutDayID != nil && wanted[*l.WorkoutDayID]
	}), nil
}

func (r *workoutLogRepository) ListByExercise(ctx context.Context, kind domain.ProgramKind, profileID string, exerciseID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return r.list(ctx, kind, func(l domain.WorkoutLog) bool {
		return l.ProfileID == profileID && l.ExerciseID == exerciseID
	}), nil
}

func (r *workoutLogRepository) DetachDays(ctx context.Context, kind domain.ProgramKind, dayIDs []primitive.ObjectID) error {
	detached := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		detached[id] = true
	}
	return r.db.write(ctx, func(s *state) error {
		for id, l := range s.logs[kind] {
			if l.WorkoutDayID != nil && detached[*l.WorkoutDayID] {
				l.WorkoutDayID = nil
				s.logs[kind][id] = l
			}
		}
		return nil
	})
}

func (r *workoutLogRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for _, kind := range domain.ProgramKinds {
			for id, l := range s.logs[kind] {
				if l.ProfileID == profileID {
					delete(s.logs[kind], id)
				}
			}
		}
		return nil
	})
}

type personalRecordRepository struct{ db *DB }

func (r *personalRecordRepository) Find(ctx context.Context, profileID string, exerciseID primitive.ObjectID) (*domain.PersonalRecord, error) {
	var found *domain.PersonalRecord
	r.db.read(ctx, func(s *state) {
		for _, record := range s.records {
			if record.ProfileID == profileID && record.ExerciseID == exerciseID {
				found = &record
				return
			}
		}
	})
	return found, nil
}

func (r *personalRecordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error) {
	if record.ProfileID == "" || record.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("personal record requires a profile and an exercise")
	}
	err := r.db.write(ctx, func(s *state) error {
		for _, stored := range s.records {
			if stored.ProfileID == record.ProfileID && stored.ExerciseID == record.ExerciseID {
				return repository.ErrDuplicate
			}
		}
		record.ID = primitive.NewObjectID()
		record.UpdatedAt = time.Now().UTC()
		s.records[record.ID] = *record
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return record.ID, nil
}

func (r *personalRecordRepository) UpdateWeight(ctx context.Context, id primitive.ObjectID, weight int) error {
	return r.db.write(ctx, func(s *state) error {
		record, ok := s.records[id]
		if !ok {
			return repository.ErrNotFound
		}
		record.Weight = weight
		record.UpdatedAt = time.Now().UTC()
		s.records[id] = record
		return nil
	})
}

func (r *personalRecordRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.PersonalRecord, error) {
	records := []domain.PersonalRecord{}
	r.db.read(ctx, func(s *state) {
		for _, record := range s.records {
			if record.ProfileID == profileID {
				records = append(records, record)
			}
		}
	})
	sort.Slice(records, func(i, j int) bool { return lessID(records[i].ID, records[j].ID) })
	return records, nil
}

func (r *personalRecordRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for id, record := range s.records {
			if record.ProfileID == profileID {
				delete(s.records, id)
			}
		}
		return nil
	})
}
