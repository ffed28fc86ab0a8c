package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title" binding:"required"`
	Author    primitive.ObjectID `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
