package utils

import (
	"context"
	"log"
	"time"

	"wastebank/config"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	notificationRetentionMonths = 6
	sessionRetentionDays        = 30
)

// CleanupExpiredData runs nightly from the scheduler. The notification
// bell only ever shows the last month, so anything past the retention
// window is dead weight; old session records go with it.
func CleanupExpiredData() {
	log.Println("Starting nightly cleanup")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	notificationCutoff := time.Now().AddDate(0, -notificationRetentionMonths, 0)
	res, err := config.NotificationCollection.DeleteMany(ctx, bson.M{
		"date": bson.M{"$lt": notificationCutoff},
	})
	if err != nil {
		log.Printf("Cleanup: failed to delete old notifications: %v\n", err)
	} else if res.DeletedCount > 0 {
		log.Printf("Cleanup: removed %d notifications older than %d months\n", res.DeletedCount, notificationRetentionMonths)
	}

	sessionCutoff := time.Now().AddDate(0, 0, -sessionRetentionDays)
	res, err = config.SessionCollection.DeleteMany(ctx, bson.M{
		"timestamp": bson.M{"$lt": sessionCutoff},
	})
	if err != nil {
		log.Printf("Cleanup: failed to delete old sessions: %v\n", err)
	} else if res.DeletedCount > 0 {
		log.Printf("Cleanup: removed %d sessions older than %d days\n", res.DeletedCount, sessionRetentionDays)
	}

	log.Println("Nightly cleanup completed")
}
