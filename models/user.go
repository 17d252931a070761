package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fullname  string             `bson:"fullname" json:"fullname"`
	Address   string             `bson:"address" json:"address"`
	Email     string             `bson:"email" json:"email"`
	Gender    string             `bson:"gender" json:"gender"`
	Role      string             `bson:"role" json:"role"`
	Password  string             `bson:"password,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type RegisterInput struct {
	Fullname string `json:"fullname" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUser struct {
	Fullname string `json:"fullname" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
}

// UserWithBalance is what admin listings return. Balance is never stored
// on the user document; it is the sum of the user's transaction totals.
type UserWithBalance struct {
	ID       string  `json:"id"`
	Fullname string  `json:"fullname"`
	Address  string  `json:"address"`
	Email    string  `json:"email"`
	Gender   string  `json:"gender"`
	Role     string  `json:"role"`
	Balance  float64 `json:"balance"`
}
