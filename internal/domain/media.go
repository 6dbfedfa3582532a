package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media is a photo or video whose bytes live in object storage under
// ObjectKey. Public media has no ProfileID.
type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind        MediaKind          `bson:"kind" json:"kind"`
	Visibility  MediaVisibility    `bson:"visibility" json:"visibility"`
	ProfileID   string             `bson:"profileId,omitempty" json:"-"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exercise"`
	Title       string             `bson:"title" json:"title"`
	ObjectKey   string             `bson:"objectKey" json:"-"`
	ContentType string             `bson:"contentType,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"-"`
}

func (m *Media) OwnerID() string { return m.ProfileID }
