package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wastebank/config"
	"wastebank/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadWasteProducts(ctx context.Context) (map[string]models.WasteProduct, error) {
	cursor, err := config.WasteProductCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := map[string]models.WasteProduct{}
	for cursor.Next(ctx) {
		var product models.WasteProduct
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products[product.ID.Hex()] = product
	}
	return products, cursor.Err()
}

// GetWastePrices is the public price list, sorted by waste name.
func GetWastePrices(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "waste", Value: 1}})
	cursor, err := config.WasteProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve waste prices"})
		return
	}
	defer cursor.Close(ctx)

	type priceView struct {
		ID              string  `json:"id"`
		Waste           string  `json:"waste"`
		Unit            string  `json:"unit"`
		Price           float64 `json:"price"`
		PhotoPreviewURL string  `json:"photo_preview_url,omitempty"`
	}

	prices := []priceView{}
	for cursor.Next(ctx) {
		var product models.WasteProduct
		if err := cursor.Decode(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing waste prices"})
			return
		}
		prices = append(prices, priceView{
			ID:              product.ID.Hex(),
			Waste:           product.Waste,
			Unit:            product.Unit,
			Price:           product.Price,
			PhotoPreviewURL: product.PhotoPreviewURL,
		})
	}

	c.JSON(http.StatusOK, prices)
}

type basketItem struct {
	WasteProductID string  `json:"waste_product_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required"`
}

type quotedItem struct {
	WasteProductID string  `json:"waste_product_id"`
	Waste          string  `json:"waste"`
	Unit           string  `json:"unit"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
}

// quoteBasket prices a hypothetical basket against current prices.
// Nothing is written; this backs the exchange calculator.
func quoteBasket(items []basketItem, products map[string]models.WasteProduct) ([]quotedItem, float64, error) {
	quoted := make([]quotedItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		product, ok := products[item.WasteProductID]
		if !ok {
			return nil, 0, fmt.Errorf("waste product %s not found", item.WasteProductID)
		}
		if item.Quantity <= 0 {
			return nil, 0, fmt.Errorf("quantity must be greater than 0")
		}
		subtotal := product.Price * item.Quantity
		quoted = append(quoted, quotedItem{
			WasteProductID: item.WasteProductID,
			Waste:          product.Waste,
			Unit:           product.Unit,
			Price:          product.Price,
			Quantity:       item.Quantity,
			Subtotal:       subtotal,
		})
		total += subtotal
	}
	return quoted, total, nil
}

func ExchangeCalculator(c *gin.Context) {
	var input struct {
		Items []basketItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Basket must contain at least one item"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := loadWasteProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	quoted, total, err := quoteBasket(input.Items, products)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": quoted,
		"total": total,
	})
}
