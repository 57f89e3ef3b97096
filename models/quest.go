package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizQuestion is one multiple-choice question; CorrectAnswer indexes Options
type QuizQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correctAnswer" json:"correctAnswer"`
	Explanation   string   `bson:"explanation" json:"explanation"`
}

// Quest is a completable learning unit awarding XP
type Quest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	RequiredLevel int    `bson:"requiredLevel" json:"requiredLevel"`
	ContentType   string `bson:"contentType" json:"contentType"` // video, article, quiz, project, coding-challenge
	ContentURL    string `bson:"contentUrl,omitempty" json:"contentUrl,omitempty"`

	Difficulty string `bson:"difficulty" json:"difficulty"` // easy, medium, hard
	XPReward   int    `bson:"xpReward" json:"xpReward"`

	QuizQuestions []QuizQuestion `bson:"quizQuestions,omitempty" json:"quizQuestions,omitempty"`

	CompletedBy []primitive.ObjectID `bson:"completedBy" json:"completedBy"`
	OrderIndex  int                  `bson:"orderIndex" json:"orderIndex"`
	IsLocked    bool                 `bson:"isLocked" json:"isLocked"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
