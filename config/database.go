package config

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client     *mongo.Client
	clientOnce sync.Once
)

func connectDB() *mongo.Client {
	log.Println("Attempting to connect to MongoDB...")

	mongoURI := MongoURI()
	log.Println("Using Mongo URI:", mongoURI)

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB is not reachable: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")
	return c
}

// Client connects lazily, on first use, so packages that only exercise pure
// logic never require a running database.
func Client() *mongo.Client {
	clientOnce.Do(func() {
		client = connectDB()
	})
	return client
}

func OpenCollection(collectionName string) *mongo.Collection {
	return Client().Database(MongoDatabase()).Collection(collectionName)
}
