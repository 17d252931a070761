package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Role      string             `bson:"role"`
	IP        string             `bson:"ip"`
	Device    string             `bson:"device"`
	Timestamp time.Time          `bson:"timestamp"`
}
