package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "devstep"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "devstep"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "devstep"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// EnsureIndexes creates the indexes the app queries against
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := MongoDatabase.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	_, err = MongoDatabase.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender", Value: 1},
			{Key: "receiver", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create messages index: %w", err)
	}

	_, err = MongoDatabase.Collection("mentorships").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "mentor", Value: 1},
			{Key: "mentee", Value: 1},
			{Key: "status", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create mentorships index: %w", err)
	}

	return nil
}
