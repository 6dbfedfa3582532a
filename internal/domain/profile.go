package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBothProgramsSelected is returned when a profile would point at a default
// and a custom program at the same time.
var ErrBothProgramsSelected = errors.New("only one of current_workout_program and current_custom_workout_program may be set")

// Profile is the fitness identity of an authenticated user. Its ID is the
// opaque id issued by the external identity provider.
type Profile struct {
	ID         string `bson:"_id" json:"id"`
	Goal       string `bson:"goal" json:"goal"`
	Experience string `bson:"experience" json:"experience"`
	Weight     int    `bson:"weight" json:"weight"`
	Height     int    `bson:"height" json:"height"`

	// At most one of the two may be set.
	CurrentWorkoutProgram       *primitive.ObjectID `bson:"currentWorkoutProgram,omitempty" json:"current_workout_program"`
	CurrentCustomWorkoutProgram *primitive.ObjectID `bson:"currentCustomWorkoutProgram,omitempty" json:"current_custom_workout_program"`

	CreatedAt time.Time `bson:"createdAt" json:"-"`
	UpdatedAt time.Time `bson:"updatedAt" json:"-"`
}

// CheckSelection enforces the single-current-program invariant.
func (p *Profile) CheckSelection() error {
	if p.CurrentWorkoutProgram != nil && p.CurrentCustomWorkoutProgram != nil {
		return ErrBothProgramsSelected
	}
	return nil
}
