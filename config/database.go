package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// InitDatabase connects to MongoDB using configuration values. A failed
// connection or ping is fatal; the API cannot run without its store.
func InitDatabase() *mongo.Database {
	if mongoDB != nil {
		return mongoDB
	}

	cfg := Get()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("mongodb ping failed: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDatabase)
	return mongoDB
}

// DB returns the connected database handle, or nil before InitDatabase.
func DB() *mongo.Database {
	return mongoDB
}

// CloseDatabase disconnects the client during shutdown.
func CloseDatabase(ctx context.Context) {
	if mongoClient == nil {
		return
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Printf("mongodb disconnect: %v", err)
	}
	mongoClient = nil
	mongoDB = nil
}
