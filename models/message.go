package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a directed message between two users
type Message struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Sender   primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver primitive.ObjectID `bson:"receiver" json:"receiver"`

	Content       string `bson:"content" json:"content"`
	AttachmentURL string `bson:"attachmentUrl,omitempty" json:"attachmentUrl,omitempty"`

	IsRead bool       `bson:"isRead" json:"isRead"`
	ReadAt *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`

	// Mentor-mentee messages are exempt from the credit charge
	IsMentorshipMessage bool `bson:"isMentorshipMessage" json:"isMentorshipMessage"`
	CreditsUsed         int  `bson:"creditsUsed" json:"creditsUsed"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ProgressionEvent is broadcast over the websocket hub on level-ups and badge awards
type ProgressionEvent struct {
	Type      string    `json:"type"` // "level_up", "badge_awarded"
	UserID    string    `json:"userId"`
	Level     int       `json:"level,omitempty"`
	LevelName string    `json:"levelName,omitempty"`
	BadgeName string    `json:"badgeName,omitempty"`
	XPEarned  int       `json:"xpEarned,omitempty"`
	TotalXP   int       `json:"totalXp,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
