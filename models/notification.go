package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRecipient struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	IsRead bool               `bson:"is_read" json:"is_read"`
}

type Notification struct {
	ID         primitive.ObjectID      `bson:"_id,omitempty" json:"id,omitempty"`
	Date       time.Time               `bson:"date" json:"date"`
	Message    string                  `bson:"message" json:"message"`
	Recipients []NotificationRecipient `bson:"recipients" json:"recipients"`
	CreatedAt  time.Time               `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type NotificationInput struct {
	Date       string   `json:"date" binding:"required"`
	Message    string   `json:"message" binding:"required"`
	Recipients []string `json:"recipients" binding:"required"`
}
