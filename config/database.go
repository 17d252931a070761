package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client                 *mongo.Client
	UserCollection         *mongo.Collection
	WasteProductCollection *mongo.Collection
	TransactionCollection  *mongo.Collection
	NotificationCollection *mongo.Collection
	SessionCollection      *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "wastebank"
	}

	Client = client
	UserCollection = Client.Database(dbName).Collection("users")
	WasteProductCollection = Client.Database(dbName).Collection("waste-products")
	TransactionCollection = Client.Database(dbName).Collection("transactions")
	NotificationCollection = Client.Database(dbName).Collection("notifications")
	SessionCollection = Client.Database(dbName).Collection("sessions")

	log.Println("Connected to MongoDB")
}
