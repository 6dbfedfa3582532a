package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exercise is a read-only catalog entry, optionally illustrated by public
// media.
type Exercise struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	PrimaryMuscle string              `bson:"primaryMuscle" json:"primary_muscle"`
	PhotoID       *primitive.ObjectID `bson:"photoId,omitempty" json:"-"`
	VideoID       *primitive.ObjectID `bson:"videoId,omitempty" json:"-"`
}
