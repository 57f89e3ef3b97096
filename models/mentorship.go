package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentorship lifecycle states
const (
	MentorshipPending   = "pending"
	MentorshipAccepted  = "accepted"
	MentorshipRejected  = "rejected"
	MentorshipCompleted = "completed"
)

// Session is one logged mentoring session
type Session struct {
	Date     time.Time `bson:"date" json:"date"`
	Duration int       `bson:"duration" json:"duration"` // minutes
	Topic    string    `bson:"topic" json:"topic"`
	Notes    string    `bson:"notes" json:"notes"`
}

// Mentorship is a directed mentor -> mentee edge with its lifecycle status
type Mentorship struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Mentor primitive.ObjectID `bson:"mentor" json:"mentor"`
	Mentee primitive.ObjectID `bson:"mentee" json:"mentee"`

	Status string `bson:"status" json:"status"`

	// Progress tracking: level snapshots for the mentor growth bonus
	MenteeLevelAtStart int `bson:"menteeLevelAtStart" json:"menteeLevelAtStart"`
	MenteeLevelCurrent int `bson:"menteeLevelCurrent" json:"menteeLevelCurrent"`

	// Endorsement (at most once per edge)
	IsEndorsed         bool   `bson:"isEndorsed" json:"isEndorsed"`
	EndorsementMessage string `bson:"endorsementMessage" json:"endorsementMessage"`
	Rating             int    `bson:"rating,omitempty" json:"rating,omitempty"`

	Sessions      []Session  `bson:"sessions" json:"sessions"`
	MessageCount  int        `bson:"messageCount" json:"messageCount"`
	LastMessageAt *time.Time `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`

	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// CanComplete reports whether the edge may transition to completed. Only an
// accepted mentorship can finish; pending, rejected, and completed edges
// have no path to completed.
func (m *Mentorship) CanComplete() bool {
	return m.Status == MentorshipAccepted
}

// CanEndorse reports whether the edge still accepts an endorsement. The
// database-side half of this guard is the conditional update on
// isEndorsed:false, which settles concurrent attempts.
func (m *Mentorship) CanEndorse() bool {
	return !m.IsEndorsed
}
