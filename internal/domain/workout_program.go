package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutProgram is a multi-week plan. Default programs belong to the shared
// catalog and have no ProfileID; custom programs are owned by one profile.
type WorkoutProgram struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind        ProgramKind        `bson:"kind" json:"-"`
	ProfileID   string             `bson:"profileId,omitempty" json:"-"`
	Name        string             `bson:"name" json:"name"`
	Length      int                `bson:"length" json:"length"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"-"`
}

func (p *WorkoutProgram) OwnerID() string { return p.ProfileID }

// DayKey identifies a row within one program. It is the upsert key of the
// days payload.
type DayKey struct {
	Week       int
	Day        int
	ExerciseID primitive.ObjectID
}

// WorkoutDay is one exercise slot of a program with its targets.
type WorkoutDay struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind       ProgramKind        `bson:"kind" json:"-"`
	ProgramID  primitive.ObjectID `bson:"programId" json:"workout_program"`
	ProfileID  string             `bson:"profileId,omitempty" json:"-"` // denormalized owner of custom days
	Week       int                `bson:"week" json:"week"`
	Day        int                `bson:"day" json:"day"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exercise"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     int                `bson:"weight" json:"weight"`
}

func (d *WorkoutDay) Key() DayKey {
	return DayKey{Week: d.Week, Day: d.Day, ExerciseID: d.ExerciseID}
}

func (d *WorkoutDay) OwnerID() string { return d.ProfileID }
