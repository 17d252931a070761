package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wastebank/config"
	"wastebank/models"
	"wastebank/realtime"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mergeRecipients builds the recipient list for an updated
// notification. Recipients kept across the update keep their read
// flag; new ones start unread.
func mergeRecipients(existing []models.NotificationRecipient, updated []primitive.ObjectID) []models.NotificationRecipient {
	readByUser := map[string]bool{}
	for _, r := range existing {
		readByUser[r.UserID.Hex()] = r.IsRead
	}

	merged := make([]models.NotificationRecipient, 0, len(updated))
	for _, userID := range updated {
		merged = append(merged, models.NotificationRecipient{
			UserID: userID,
			IsRead: readByUser[userID.Hex()],
		})
	}
	return merged
}

func parseRecipientIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hexID := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pushNotification(n models.Notification) {
	payload, err := json.Marshal(gin.H{
		"id":      n.ID.Hex(),
		"date":    n.Date,
		"message": n.Message,
	})
	if err != nil {
		return
	}
	for _, r := range n.Recipients {
		realtime.Notifications.Push(r.UserID.Hex(), payload)
	}
}

func CreateNotification(c *gin.Context) {
	var input models.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseTransactionDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification must have at least one recipient"})
		return
	}

	recipientIDs, err := parseRecipientIDs(input.Recipients)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient ID"})
		return
	}

	notification := models.Notification{
		ID:         primitive.NewObjectID(),
		Date:       date,
		Message:    input.Message,
		Recipients: mergeRecipients(nil, recipientIDs),
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = config.NotificationCollection.InsertOne(ctx, notification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	pushNotification(notification)

	c.JSON(http.StatusCreated, gin.H{"message": "Notification created successfully", "id": notification.ID.Hex()})
}

func GetAllNotifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userNames, err := loadUserNameMap(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.NotificationCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	defer cursor.Close(ctx)

	type recipientView struct {
		UserID   string `json:"user_id"`
		Fullname string `json:"fullname"`
		IsRead   bool   `json:"is_read"`
	}
	type notificationView struct {
		ID         string          `json:"id"`
		Date       time.Time       `json:"date"`
		Message    string          `json:"message"`
		Recipients []recipientView `json:"recipients"`
	}

	notifications := []notificationView{}
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing notifications"})
			return
		}

		recipients := make([]recipientView, 0, len(n.Recipients))
		for _, r := range n.Recipients {
			fullname := "Unknown"
			if name, ok := userNames[r.UserID.Hex()]; ok {
				fullname = name
			}
			recipients = append(recipients, recipientView{
				UserID:   r.UserID.Hex(),
				Fullname: fullname,
				IsRead:   r.IsRead,
			})
		}

		notifications = append(notifications, notificationView{
			ID:         n.ID.Hex(),
			Date:       n.Date,
			Message:    n.Message,
			Recipients: recipients,
		})
	}

	c.JSON(http.StatusOK, notifications)
}

func UpdateNotification(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var input models.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseTransactionDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification must have at least one recipient"})
		return
	}

	recipientIDs, err := parseRecipientIDs(input.Recipients)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.Notification
	err = config.NotificationCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	update := bson.M{"$set": bson.M{
		"date":       date,
		"message":    input.Message,
		"recipients": mergeRecipients(existing.Recipients, recipientIDs),
	}}

	_, err = config.NotificationCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification updated successfully"})
}

func DeleteNotification(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.NotificationCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
