package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FoodLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID string             `bson:"profileId" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Week      int                `bson:"week" json:"week"`
	Day       int                `bson:"day" json:"day"`
	Meal      Meal               `bson:"meal" json:"meal"`
	Calories  int                `bson:"calories" json:"calories"`
	Created   time.Time          `bson:"created" json:"created"`
}

func (f *FoodLog) OwnerID() string { return f.ProfileID }
