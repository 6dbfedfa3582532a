package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramServiceSuite struct {
	suite.Suite
	f       *fixture
	profile string
	squat   primitive.ObjectID
	bench   primitive.ObjectID
}

func TestProgramServiceSuite(t *testing.T) {
	suite.Run(t, new(ProgramServiceSuite))
}

func (s *ProgramServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.profile = s.f.profile(s.T())
	s.squat = s.f.exercise(s.T(), "Squat")
	s.bench = s.f.exercise(s.T(), "Bench Press")
}

func (s *ProgramServiceSuite) row(week, day int, ex primitive.ObjectID, sets, reps, weight int) DayInput {
	return DayInput{Week: week, Day: day, Exercise: ex.Hex(), Sets: sets, Reps: reps, Weight: weight}
}

func (s *ProgramServiceSuite) rows(programID primitive.ObjectID) []domain.WorkoutDay {
	days, err := s.f.store.WorkoutDays.ListByProgram(s.f.ctx, domain.ProgramCustom, programID)
	s.Require().NoError(err)
	return days
}

func (s *ProgramServiceSuite) TestCreateWithDays() {
	detail, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{
		Name:        "5x5",
		Length:      12,
		Description: "linear progression",
		Days: []DayInput{
			s.row(1, 1, s.squat, 5, 5, 100),
			s.row(1, 1, s.bench, 5, 5, 60),
			s.row(1, 3, s.squat, 5, 5, 105),
		},
	})
	s.Require().NoError(err)
	s.Equal(domain.ProgramCustom, detail.Program.Kind)
	s.Equal(s.profile, detail.Program.ProfileID)

	entries, _ := mustDay(s.T(), detail.Days, "1", "1")
	s.Require().Len(entries, 2)
	s.Equal("Squat", entries[0].ExerciseName)
	s.Equal("Bench Press", entries[1].ExerciseName)
	s.Len(s.rows(detail.Program.ID), 3)
}

func (s *ProgramServiceSuite) TestDaysUpsertIsIdempotent() {
	payload := []DayInput{s.row(1, 1, s.squat, 5, 5, 100), s.row(1, 2, s.bench, 3, 8, 50)}
	detail, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{Name: "Idem", Length: 4, Days: payload})
	s.Require().NoError(err)
	first := s.rows(detail.Program.ID)

	for i := 0; i < 2; i++ {
		_, err = s.f.services.Programs.UpdateProgram(s.f.ctx, s.profile, domain.ProgramCustom, detail.Program.ID.Hex(), ProgramPatch{Days: payload})
		s.Require().NoError(err)
	}
	s.Equal(first, s.rows(detail.Program.ID))

	// same key, new targets: updated in place
	_, err = s.f.services.Programs.UpdateProgram(s.f.ctx, s.profile, domain.ProgramCustom, detail.Program.ID.Hex(), ProgramPatch{
		Days: []DayInput{s.row(1, 1, s.squat, 3, 3, 120)},
	})
	s.Require().NoError(err)
	after := s.rows(detail.Program.ID)
	s.Require().Len(after, 2)
	s.Equal(first[0].ID, after[0].ID)
	s.Equal(120, after[0].Weight)
	s.Equal(3, after[0].Sets)
}

func (s *ProgramServiceSuite) TestDeleteMarker() {
	detail, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{
		Name: "Del", Length: 1,
		Days: []DayInput{s.row(1, 1, s.squat, 5, 5, 100), s.row(1, 1, s.bench, 5, 5, 60)},
	})
	s.Require().NoError(err)
	id := detail.Program.ID.Hex()

	_, err = s.f.services.Programs.UpdateProgram(s.f.ctx, s.profile, domain.ProgramCustom, id, ProgramPatch{
		Days: []DayInput{{Week: 1, Day: 1, Exercise: s.bench.Hex(), Delete: true}},
	})
	s.Require().NoError(err)
	remaining := s.rows(detail.Program.ID)
	s.Require().Len(remaining, 1)
	s.Equal(s.squat, remaining[0].ExerciseID)

	// absent key: no-op
	_, err = s.f.services.Programs.UpdateProgram(s.f.ctx, s.profile, domain.ProgramCustom, id, ProgramPatch{
		Days: []DayInput{{Week: 4, Day: 7, Exercise: s.bench.Hex(), Delete: true}},
	})
	s.Require().NoError(err)
	s.Len(s.rows(detail.Program.ID), 1)
}

func (s *ProgramServiceSuite) TestUnknownExerciseRollsBackCreation() {
	missing := primitive.NewObjectID().Hex()
	_, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{
		Name: "Broken", Length: 2,
		Days: []DayInput{
			s.row(1, 1, s.squat, 5, 5, 100),
			{Week: 1, Day: 2, Exercise: missing, Sets: 5, Reps: 5},
			{Week: 1, Day: 3, Exercise: "nope", Delete: true},
		},
	})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{
		`[1] exercise: Invalid pk "` + missing + `" - object does not exist.`,
		`[2] exercise: Invalid pk "nope" - object does not exist.`,
	}, verr.Fields["days"])

	programs, err := s.f.store.Programs.List(s.f.ctx, domain.ProgramCustom, s.profile)
	s.Require().NoError(err)
	s.Empty(programs)
}

func (s *ProgramServiceSuite) TestFailedWriteRollsBackTransaction() {
	// a day without an exercise is rejected by the repository mid-transaction
	program := &domain.WorkoutProgram{Kind: domain.ProgramCustom, ProfileID: s.profile, Name: "Tx", Length: 1}
	err := s.f.store.Tx.WithTransaction(s.f.ctx, func(ctx context.Context) error {
		if _, err := s.f.store.Programs.Create(ctx, program); err != nil {
			return err
		}
		return s.f.store.WorkoutDays.Upsert(ctx, &domain.WorkoutDay{Kind: domain.ProgramCustom, ProgramID: program.ID, Week: 1, Day: 1})
	})
	s.Require().Error(err)

	programs, err := s.f.store.Programs.List(s.f.ctx, domain.ProgramCustom, s.profile)
	s.Require().NoError(err)
	s.Empty(programs)
}

func (s *ProgramServiceSuite) TestListBothKinds() {
	s.f.defaultProgram(s.T(), "Catalog")
	_, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{Name: "Own", Length: 1})
	s.Require().NoError(err)
	// someone else's program stays invisible
	_, err = s.f.services.Programs.CreateProgram(s.f.ctx, s.f.profile(s.T()), ProgramInput{Name: "Theirs", Length: 1})
	s.Require().NoError(err)

	listed, err := s.f.services.Programs.ListPrograms(s.f.ctx, s.profile, []domain.ProgramKind{domain.ProgramDefault, domain.ProgramCustom})
	s.Require().NoError(err)
	s.Equal([]string{"default", "custom"}, listed.Keys())
	defaults, _ := listed.Get("default")
	customs, _ := listed.Get("custom")
	s.Len(defaults, 1)
	s.Require().Len(customs, 1)
	s.Equal("Own", customs[0].Name)

	onlyCustom, err := s.f.services.Programs.ListPrograms(s.f.ctx, s.profile, []domain.ProgramKind{domain.ProgramCustom})
	s.Require().NoError(err)
	s.Equal([]string{"custom"}, onlyCustom.Keys())
}

func (s *ProgramServiceSuite) TestGetComposesForCaller() {
	def := s.f.defaultProgram(s.T(), "Catalog",
		domain.WorkoutDay{Week: 1, Day: 1, ExerciseID: s.squat, Sets: 5, Reps: 5, Weight: 80},
		domain.WorkoutDay{Week: 1, Day: 2, ExerciseID: s.bench, Sets: 5, Reps: 5, Weight: 50},
	)
	days, err := s.f.store.WorkoutDays.ListByProgram(s.f.ctx, domain.ProgramDefault, def.ID)
	s.Require().NoError(err)

	_, err = s.f.services.WorkoutLogs.PutWorkoutLog(s.f.ctx, s.profile, domain.ProgramDefault, WorkoutLogInput{WorkoutDay: days[0].ID.Hex(), Reps: domain.Reps{5, 5, 5, 4, 3}})
	s.Require().NoError(err)

	detail, err := s.f.services.Programs.GetProgram(s.f.ctx, s.profile, domain.ProgramDefault, def.ID.Hex())
	s.Require().NoError(err)
	day1, _ := mustDay(s.T(), detail.Days, "1", "1")
	s.Equal(domain.Reps{5, 5, 5, 4, 3}, day1[0].LoggedReps)
	day2, _ := mustDay(s.T(), detail.Days, "1", "2")
	s.Nil(day2[0].LoggedReps)

	// another profile sees no annotations
	detail, err = s.f.services.Programs.GetProgram(s.f.ctx, s.f.profile(s.T()), domain.ProgramDefault, def.ID.Hex())
	s.Require().NoError(err)
	day1, _ = mustDay(s.T(), detail.Days, "1", "1")
	s.Nil(day1[0].LoggedReps)
}

func (s *ProgramServiceSuite) TestCustomProgramsAreScoped() {
	detail, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{Name: "Mine", Length: 1})
	s.Require().NoError(err)
	intruder := s.f.profile(s.T())
	id := detail.Program.ID.Hex()

	_, err = s.f.services.Programs.GetProgram(s.f.ctx, intruder, domain.ProgramCustom, id)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.f.services.Programs.UpdateProgram(s.f.ctx, intruder, domain.ProgramCustom, id, ProgramPatch{Name: strp("x")})
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.f.services.Programs.DeleteProgram(s.f.ctx, intruder, domain.ProgramCustom, id), ErrNotFound)
	// the same id is not a default program
	_, err = s.f.services.Programs.GetProgram(s.f.ctx, s.profile, domain.ProgramDefault, id)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.f.services.Programs.GetProgram(s.f.ctx, s.profile, domain.ProgramCustom, "not-an-id")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ProgramServiceSuite) TestDefaultProgramsAreReadOnly() {
	def := s.f.defaultProgram(s.T(), "Catalog")
	_, err := s.f.services.Programs.UpdateProgram(s.f.ctx, s.profile, domain.ProgramDefault, def.ID.Hex(), ProgramPatch{Name: strp("mine now")})
	var verr *ValidationError
	s.ErrorAs(err, &verr)
	s.ErrorAs(s.f.services.Programs.DeleteProgram(s.f.ctx, s.profile, domain.ProgramDefault, def.ID.Hex()), &verr)
}

func (s *ProgramServiceSuite) TestCopyDefaultProgram() {
	def := s.f.defaultProgram(s.T(), "Catalog",
		domain.WorkoutDay{Week: 1, Day: 1, ExerciseID: s.squat, Sets: 5, Reps: 5, Weight: 80},
		domain.WorkoutDay{Week: 2, Day: 1, ExerciseID: s.squat, Sets: 5, Reps: 5, Weight: 85},
	)

	copied, err := s.f.services.Programs.CopyProgram(s.f.ctx, s.profile, domain.ProgramDefault, def.ID.Hex(), ProgramPatch{
		Name: strp("My Catalog"),
		Days: []DayInput{s.row(2, 3, s.bench, 3, 10, 40)},
	})
	s.Require().NoError(err)
	s.Equal("My Catalog", copied.Program.Name)
	s.Equal(def.Length, copied.Program.Length)
	s.NotEqual(def.ID, copied.Program.ID)

	rows := s.rows(copied.Program.ID)
	s.Require().Len(rows, 3)
	for _, r := range rows {
		s.Equal(s.profile, r.ProfileID)
	}

	// the source is untouched
	source, err := s.f.store.WorkoutDays.ListByProgram(s.f.ctx, domain.ProgramDefault, def.ID)
	s.Require().NoError(err)
	s.Len(source, 2)
}

func (s *ProgramServiceSuite) TestDeleteKeepsLogHistory() {
	detail, err := s.f.services.Programs.CreateProgram(s.f.ctx, s.profile, ProgramInput{
		Name: "Short", Length: 1, Days: []DayInput{s.row(1, 1, s.squat, 1, 1, 150)},
	})
	s.Require().NoError(err)
	entries, _ := mustDay(s.T(), detail.Days, "1", "1")
	_, err = s.f.services.WorkoutLogs.PutWorkoutLog(s.f.ctx, s.profile, domain.ProgramCustom, WorkoutLogInput{WorkoutDay: entries[0].ID.Hex(), Reps: domain.Reps{1}})
	s.Require().NoError(err)
	_, err = s.f.services.Profiles.UpdateProfile(s.f.ctx, s.profile, ProfilePatch{
		CurrentCustomWorkoutProgram: Selection{Present: true, ID: detail.Program.ID.Hex()},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.f.services.Programs.DeleteProgram(s.f.ctx, s.profile, domain.ProgramCustom, detail.Program.ID.Hex()))

	s.Empty(s.rows(detail.Program.ID))
	history, err := s.f.services.WorkoutLogs.History(s.f.ctx, s.profile, s.squat.Hex())
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(150, history[0].Weight)

	profile, err := s.f.services.Profiles.GetProfile(s.f.ctx, s.profile)
	s.Require().NoError(err)
	s.Nil(profile.CurrentCustomWorkoutProgram)
}
