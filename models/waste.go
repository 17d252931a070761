package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WasteProduct struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Waste           string             `bson:"waste" json:"waste"`
	Unit            string             `bson:"unit" json:"unit"`
	Price           float64            `bson:"price" json:"price"`
	PhotoURL        string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PhotoPreviewURL string             `bson:"photo_preview_url,omitempty" json:"photo_preview_url,omitempty"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
