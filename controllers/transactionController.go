package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wastebank/config"
	"wastebank/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// parseTransactionDate accepts RFC3339 or a bare date.
func parseTransactionDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", value)
}

// priceItems recomputes every subtotal from the current product prices.
// Client-sent amounts are never trusted.
func priceItems(inputs []models.TransactionItemInput, products map[string]models.WasteProduct) ([]models.TransactionItem, float64, error) {
	items := make([]models.TransactionItem, 0, len(inputs))
	total := 0.0
	for _, input := range inputs {
		product, ok := products[input.WasteProductID]
		if !ok {
			return nil, 0, fmt.Errorf("waste product %s not found", input.WasteProductID)
		}
		if input.Quantity < 1 {
			return nil, 0, fmt.Errorf("quantity must be at least 1")
		}
		subtotal := product.Price * input.Quantity
		items = append(items, models.TransactionItem{
			WasteProductID: product.ID,
			Quantity:       input.Quantity,
			Subtotal:       subtotal,
		})
		total += subtotal
	}
	return items, total, nil
}

// normalizeItems resolves product references for display. A deleted
// product shows up as "Unknown" instead of breaking the listing.
func normalizeItems(items []models.TransactionItem, products map[string]models.WasteProduct) []models.NormalizedItem {
	normalized := make([]models.NormalizedItem, 0, len(items))
	for _, item := range items {
		waste := "Unknown"
		unit := "Unknown"
		if product, ok := products[item.WasteProductID.Hex()]; ok {
			waste = product.Waste
			unit = product.Unit
		}
		normalized = append(normalized, models.NormalizedItem{
			WasteProductID: item.WasteProductID.Hex(),
			Waste:          waste,
			Unit:           unit,
			Quantity:       item.Quantity,
			Subtotal:       item.Subtotal,
		})
	}
	return normalized
}

func normalizeTransaction(t models.Transaction, userNames map[string]string, products map[string]models.WasteProduct) models.NormalizedTransaction {
	fullname := "Unknown"
	if name, ok := userNames[t.UserID.Hex()]; ok {
		fullname = name
	}
	return models.NormalizedTransaction{
		ID:            t.ID.Hex(),
		Date:          t.Date,
		UserID:        t.UserID.Hex(),
		Fullname:      fullname,
		WasteProducts: normalizeItems(t.WasteProducts, products),
		Total:         t.Total,
	}
}

// loadProductMap fetches all waste products keyed by hex id. Listing
// endpoints resolve references from one query instead of one per item.
func loadProductMap(ctx context.Context) (map[string]models.WasteProduct, error) {
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

func loadUserNameMap(ctx context.Context) (map[string]string, error) {
	opts := options.Find().SetProjection(bson.M{"fullname": 1})
	cursor, err := config.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := map[string]string{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		names[user.ID.Hex()] = user.Fullname
	}
	return names, cursor.Err()
}

func CreateTransaction(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseTransactionDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if len(input.WasteProducts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction must contain at least one waste product"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil || count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	products, err := loadProductMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	items, total, err := priceItems(input.WasteProducts, products)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		ID:            primitive.NewObjectID(),
		Date:          date,
		UserID:        userID,
		WasteProducts: items,
		Total:         total,
		ViewToken:     uuid.NewString(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	_, err = config.TransactionCollection.InsertOne(ctx, transaction)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Transaction created successfully", "id": transaction.ID.Hex(), "total": total})
}

// UpdateTransaction replaces the whole item list. Subtotals are
// repriced against current product prices; the view token is kept so
// printed receipts stay valid.
func UpdateTransaction(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseTransactionDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if len(input.WasteProducts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction must contain at least one waste product"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.Transaction
	err = config.TransactionCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil || count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	products, err := loadProductMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	items, total, err := priceItems(input.WasteProducts, products)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"date":           date,
		"user_id":        userID,
		"waste_products": items,
		"total":          total,
		"updated_at":     time.Now(),
	}}

	_, err = config.TransactionCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully", "total": total})
}

func DeleteTransaction(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.TransactionCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func GetAllTransactions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := loadProductMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	userNames, err := loadUserNameMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.TransactionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}
	defer cursor.Close(ctx)

	transactions := []models.NormalizedTransaction{}
	for cursor.Next(ctx) {
		var t models.Transaction
		if err := cursor.Decode(&t); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing transactions"})
			return
		}
		transactions = append(transactions, normalizeTransaction(t, userNames, products))
	}

	c.JSON(http.StatusOK, transactions)
}

func GetTransaction(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var t models.Transaction
	err = config.TransactionCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving transaction"})
		}
		return
	}

	products, err := loadProductMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	userNames, err := loadUserNameMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	c.JSON(http.StatusOK, normalizeTransaction(t, userNames, products))
}
