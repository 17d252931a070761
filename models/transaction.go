package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionItem is one waste-product line inside a transaction. The
// subtotal is recomputed server-side on every write; client-supplied
// subtotals are ignored.
type TransactionItem struct {
	WasteProductID primitive.ObjectID `bson:"waste_product_id" json:"waste_product_id"`
	Quantity       float64            `bson:"quantity" json:"quantity"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
}

type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	WasteProducts []TransactionItem  `bson:"waste_products" json:"waste_products"`
	Total         float64            `bson:"total" json:"total"`
	ViewToken     string             `bson:"view_token" json:"-"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type TransactionItemInput struct {
	WasteProductID string  `json:"waste_product_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required"`
}

type TransactionInput struct {
	Date          string                 `json:"date" binding:"required"`
	UserID        string                 `json:"user_id" binding:"required"`
	WasteProducts []TransactionItemInput `json:"waste_products" binding:"required"`
}

// NormalizedItem is a line item with its product reference resolved for
// display. A dangling reference resolves to the "Unknown" placeholder.
type NormalizedItem struct {
	WasteProductID string  `json:"waste_product_id"`
	Waste          string  `json:"waste"`
	Unit           string  `json:"unit"`
	Quantity       float64 `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
}

type NormalizedTransaction struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	UserID        string           `json:"user_id"`
	Fullname      string           `json:"fullname"`
	WasteProducts []NormalizedItem `json:"waste_products"`
	Total         float64          `json:"total"`
}
