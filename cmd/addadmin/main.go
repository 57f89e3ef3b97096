package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"devstep/config"
	"devstep/db"
	"devstep/levels"
	"devstep/models"
	"devstep/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "", "Admin name (required)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Println("Error: email, password, and name are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	users := db.GetCollection("users")

	var existing models.User
	err = users.FindOne(dbCtx, bson.M{"email": *email}).Decode(&existing)
	if err == nil {
		log.Fatalf("User with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	hashedPassword, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	tier := levels.Resolve(0)
	admin := models.User{
		Name:             *name,
		Email:            *email,
		Password:         hashedPassword,
		Role:             "admin",
		Level:            tier.Level,
		XP:               0,
		CurrentLevelName: tier.Name,
		CompletedQuests:  []primitive.ObjectID{},
		ActiveMentees:    []primitive.ObjectID{},
		Badges:           []models.Badge{},
		Artifacts:        []models.Artifact{},
		ActivityLog:      []models.ActivityEntry{},
		MessageCredits:   10,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	result, err := users.InsertOne(dbCtx, admin)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin created successfully\n")
	fmt.Printf("   ID: %s\n", result.InsertedID)
	fmt.Printf("   Email: %s\n", *email)
	fmt.Printf("   Name: %s\n", *name)
}
