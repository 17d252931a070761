package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"wastebank/config"
	"wastebank/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// currentUserID pulls the authenticated user's id set by the auth
// middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		return primitive.NilObjectID, false
	}
	hexID, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func userBalance(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{
			bson.E{Key: "$match", Value: bson.D{
				bson.E{Key: "user_id", Value: userID},
			}},
		},
		bson.D{
			bson.E{Key: "$group", Value: bson.D{
				bson.E{Key: "_id", Value: nil},
				bson.E{Key: "balance", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			}},
		},
	}

	cursor, err := config.TransactionCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	switch v := results[0]["balance"].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, nil
}

func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	balance, err := userBalance(ctx, userID)
	if err != nil {
		balance = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID.Hex(),
		"fullname": user.Fullname,
		"address":  user.Address,
		"email":    user.Email,
		"gender":   user.Gender,
		"balance":  balance,
	})
}

func UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Fullname string `json:"fullname" binding:"required"`
		Address  string `json:"address" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Gender   string `json:"gender" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Gender != "male" && input.Gender != "female" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gender must be male or female"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(input.Email)
	count, err := config.UserCollection.CountDocuments(ctx, bson.M{
		"email": email,
		"_id":   bson.M{"$ne": userID},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	}

	update := bson.M{"$set": bson.M{
		"fullname": input.Fullname,
		"address":  input.Address,
		"email":    email,
		"gender":   input.Gender,
	}}

	result, err := config.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetMyTransactions lists the caller's transactions newest first,
// alongside the derived balance.
func GetMyTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := loadWasteProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waste products"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.TransactionCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}
	defer cursor.Close(ctx)

	type itemView struct {
		Waste    string  `json:"waste"`
		Unit     string  `json:"unit"`
		Quantity float64 `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	}
	type transactionView struct {
		ID            string     `json:"id"`
		Date          time.Time  `json:"date"`
		WasteProducts []itemView `json:"waste_products"`
		Total         float64    `json:"total"`
	}

	transactions := []transactionView{}
	for cursor.Next(ctx) {
		var t models.Transaction
		if err := cursor.Decode(&t); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing transactions"})
			return
		}

		items := make([]itemView, 0, len(t.WasteProducts))
		for _, item := range t.WasteProducts {
			waste := "Unknown"
			unit := "Unknown"
			if product, ok := products[item.WasteProductID.Hex()]; ok {
				waste = product.Waste
				unit = product.Unit
			}
			items = append(items, itemView{
				Waste:    waste,
				Unit:     unit,
				Quantity: item.Quantity,
				Subtotal: item.Subtotal,
			})
		}

		transactions = append(transactions, transactionView{
			ID:            t.ID.Hex(),
			Date:          t.Date,
			WasteProducts: items,
			Total:         t.Total,
		})
	}

	balance, err := userBalance(ctx, userID)
	if err != nil {
		balance = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":      balance,
		"transactions": transactions,
	})
}
