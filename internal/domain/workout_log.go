package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidReps = errors.New("must be a comma separated list of ints, without any spaces")

// Reps is the per-set rep count of a log. On the wire it is comma-joined
// text such as "5,5,4"; in storage it is an array.
type Reps []int

// ParseReps accepts only canonical integers: no spaces, no signs, no leading
// zeros, nothing empty.
func ParseReps(s string) (Reps, error) {
	if s == "" {
		return nil, ErrInvalidReps
	}
	parts := strings.Split(s, ",")
	reps := make(Reps, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || strconv.Itoa(n) != part {
			return nil, ErrInvalidReps
		}
		reps = append(reps, n)
	}
	return reps, nil
}

func (r Reps) String() string {
	parts := make([]string, len(r))
	for i, n := range r {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (r Reps) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidReps
	}
	parsed, err := ParseReps(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// WorkoutLog records what a profile actually did against one workout day.
// ExerciseID and Weight are copied from the day when the log is written so
// that history survives the day being removed (WorkoutDayID becomes nil).
type WorkoutLog struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Kind         ProgramKind         `bson:"kind" json:"-"`
	ProfileID    string              `bson:"profileId" json:"profile"`
	WorkoutDayID *primitive.ObjectID `bson:"workoutDayId,omitempty" json:"workout_day"`
	ExerciseID   primitive.ObjectID  `bson:"exerciseId" json:"-"`
	Weight       int                 `bson:"weight" json:"-"`
	Reps         Reps                `bson:"reps" json:"reps"`
	Created      time.Time           `bson:"created" json:"created"`
}

func (l *WorkoutLog) OwnerID() string { return l.ProfileID }

// PersonalRecord is the heaviest weight a profile logged for an exercise.
type PersonalRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID  string             `bson:"profileId" json:"profile"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exercise"`
	Weight     int                `bson:"weight" json:"weight"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"-"`
}
