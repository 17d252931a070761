package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"wastebank/config"
	"wastebank/models"
	"wastebank/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GetMyNotifications lists the caller's notifications from the last
// month, newest first, with the caller's own read flag.
func GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	since := time.Now().AddDate(0, -1, 0)
	filter := bson.M{
		"recipients.user_id": userID,
		"date":               bson.M{"$gte": since},
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.NotificationCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	defer cursor.Close(ctx)

	type notificationView struct {
		ID      string    `json:"id"`
		Date    time.Time `json:"date"`
		Message string    `json:"message"`
		IsRead  bool      `json:"is_read"`
	}

	notifications := []notificationView{}
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing notifications"})
			return
		}

		isRead := false
		for _, r := range n.Recipients {
			if r.UserID == userID {
				isRead = r.IsRead
				break
			}
		}

		notifications = append(notifications, notificationView{
			ID:      n.ID.Hex(),
			Date:    n.Date,
			Message: n.Message,
			IsRead:  isRead,
		})
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips the caller's own recipient entry only.
func MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": objID, "recipients.user_id": userID}
	update := bson.M{"$set": bson.M{"recipients.$.is_read": true}}

	result, err := config.NotificationCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// NotificationsWS upgrades to a websocket and streams new
// notifications to the caller until the connection drops.
func NotificationsWS(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &realtime.Client{
		UserID: userID.Hex(),
		Send:   make(chan []byte, 16),
	}
	realtime.Notifications.Register(client)

	go func() {
		defer conn.Close()
		for data := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// reader only watches for disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	realtime.Notifications.Unregister(client)
}
