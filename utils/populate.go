package utils

import (
	"context"
	"log"
	"time"

	"devstep/db"
	"devstep/levels"
	"devstep/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedQuests inserts starter quests if the collection is empty
func SeedQuests() {
	collection := db.GetCollection("quests")

	count, err := collection.CountDocuments(context.Background(), bson.M{})
	if err != nil || count > 0 {
		return
	}

	now := time.Now()
	quests := []interface{}{
		models.Quest{
			Title:         "Hello, Terminal",
			Description:   "Set up your development environment and run your first program.",
			RequiredLevel: 1,
			ContentType:   "article",
			ContentURL:    "https://example.com/articles/hello-terminal",
			Difficulty:    "easy",
			XPReward:      100,
			OrderIndex:    1,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		models.Quest{
			Title:         "Variables and Types",
			Description:   "Watch the intro video on variables, then mark the quest complete.",
			RequiredLevel: 1,
			ContentType:   "video",
			ContentURL:    "https://example.com/videos/variables",
			Difficulty:    "easy",
			XPReward:      150,
			OrderIndex:    2,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		models.Quest{
			Title:         "Control Flow Quiz",
			Description:   "Test your understanding of conditionals and loops.",
			RequiredLevel: 1,
			ContentType:   "quiz",
			Difficulty:    "medium",
			XPReward:      200,
			QuizQuestions: []models.QuizQuestion{
				{
					Question:      "Which statement repeats a block while a condition holds?",
					Options:       []string{"if", "for", "switch", "defer"},
					CorrectAnswer: 1,
					Explanation:   "A for loop repeats while its condition is true.",
				},
				{
					Question:      "What does an if statement evaluate?",
					Options:       []string{"a string", "a boolean condition", "a loop counter", "a type"},
					CorrectAnswer: 1,
					Explanation:   "The if condition must evaluate to a boolean.",
				},
				{
					Question:      "Which keyword selects one of many branches?",
					Options:       []string{"select", "case", "switch", "goto"},
					CorrectAnswer: 2,
					Explanation:   "switch dispatches across multiple cases.",
				},
			},
			OrderIndex: 3,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		models.Quest{
			Title:         "Build a REST API",
			Description:   "Design and implement a small CRUD API with tests.",
			RequiredLevel: 3,
			ContentType:   "project",
			Difficulty:    "hard",
			XPReward:      600,
			OrderIndex:    4,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	if _, err := collection.InsertMany(context.Background(), quests); err != nil {
		log.Printf("Failed to seed quests: %v", err)
		return
	}
	log.Printf("Seeded %d starter quests", len(quests))
}

// PopulateTestUsers inserts sample users into the database if none exist
func PopulateTestUsers() {
	collection := db.GetCollection("users")

	count, err := collection.CountDocuments(context.Background(), bson.M{})
	if err != nil || count > 0 {
		return
	}

	hash, err := HashPassword("password123")
	if err != nil {
		log.Printf("Failed to hash seed password: %v", err)
		return
	}

	now := time.Now()
	seeds := []struct {
		name  string
		email string
		xp    int
	}{
		{"Alice Johnson", "alice@example.com", 5200},
		{"Bob Smith", "bob@example.com", 1600},
		{"Carol Davis", "carol@example.com", 100},
	}

	for _, s := range seeds {
		user := models.User{
			Name:             s.name,
			Email:            s.email,
			Password:         hash,
			Role:             "user",
			Level:            1,
			CurrentLevelName: levels.Table[0].Name,
			CompletedQuests:  []primitive.ObjectID{},
			ActiveMentees:    []primitive.ObjectID{},
			Badges:           []models.Badge{},
			Artifacts:        []models.Artifact{},
			ActivityLog:      []models.ActivityEntry{},
			MessageCredits:   10,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		levels.ApplyXPChange(&user, s.xp, now)
		if _, err := collection.InsertOne(context.Background(), user); err != nil {
			log.Printf("Failed to seed user %s: %v", s.email, err)
		}
	}
	log.Printf("Seeded %d sample users", len(seeds))
}
