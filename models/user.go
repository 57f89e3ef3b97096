package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is awarded once per level threshold crossed
type Badge struct {
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	UnlockedAt  time.Time `bson:"unlockedAt" json:"unlockedAt"`
}

// Artifact is a digital collectible granted on reaching a level
type Artifact struct {
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Level       int       `bson:"level" json:"level"`
	UnlockedAt  time.Time `bson:"unlockedAt" json:"unlockedAt"`
}

// ActivityEntry is one calendar day of study activity, used by the heatmap
type ActivityEntry struct {
	Date            time.Time `bson:"date" json:"date"`
	StudyHours      float64   `bson:"studyHours" json:"studyHours"`
	QuestsCompleted int       `bson:"questsCompleted" json:"questsCompleted"`
	XPEarned        int       `bson:"xpEarned" json:"xpEarned"`
}

// User defines a user entity
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"` // "user" or "admin"

	// Gamification & progression
	Level            int    `bson:"level" json:"level"`
	XP               int    `bson:"xp" json:"xp"`
	CurrentLevelName string `bson:"currentLevelName" json:"currentLevelName"`

	CompletedQuests []primitive.ObjectID `bson:"completedQuests" json:"completedQuests"`
	CurrentQuest    *primitive.ObjectID  `bson:"currentQuest,omitempty" json:"currentQuest,omitempty"`

	// Streak tracking
	LastLoginDate *time.Time `bson:"lastLoginDate,omitempty" json:"lastLoginDate,omitempty"`
	StreakCount   int        `bson:"streakCount" json:"streakCount"`
	LongestStreak int        `bson:"longestStreak" json:"longestStreak"`

	// Mentorship
	IsMentor      bool                 `bson:"isMentor" json:"isMentor"`
	CanMentor     bool                 `bson:"canMentor" json:"canMentor"`
	MentorSlots   int                  `bson:"mentorSlots" json:"mentorSlots"`
	ActiveMentees []primitive.ObjectID `bson:"activeMentees" json:"activeMentees"`
	MyMentor      *primitive.ObjectID  `bson:"myMentor,omitempty" json:"myMentor,omitempty"`
	MentorPoints  int                  `bson:"mentorPoints" json:"mentorPoints"`
	Endorsements  int                  `bson:"endorsements" json:"endorsements"`

	// Professional links
	GithubProfile   string `bson:"githubProfile" json:"githubProfile"`
	LinkedInProfile string `bson:"linkedInProfile" json:"linkedInProfile"`
	PortfolioURL    string `bson:"portfolioUrl" json:"portfolioUrl"`

	Badges      []Badge         `bson:"badges" json:"badges"`
	Artifacts   []Artifact      `bson:"artifacts" json:"artifacts"`
	ActivityLog []ActivityEntry `bson:"activityLog" json:"activityLog"`

	// Messaging credits to prevent spam
	MessageCredits int `bson:"messageCredits" json:"messageCredits"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasCompletedQuest reports whether questID is already in the completed set
func (u *User) HasCompletedQuest(questID primitive.ObjectID) bool {
	for _, id := range u.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// HasMentee reports whether userID is one of the user's active mentees
func (u *User) HasMentee(userID primitive.ObjectID) bool {
	for _, id := range u.ActiveMentees {
		if id == userID {
			return true
		}
	}
	return false
}

// Truncate to local midnight; activity entries are keyed by calendar day
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LogActivity upserts today's activity entry, incrementing the quest and XP counters
func (u *User) LogActivity(now time.Time, questsCompleted, xpEarned int) {
	today := midnight(now)
	for i := range u.ActivityLog {
		if midnight(u.ActivityLog[i].Date).Equal(today) {
			u.ActivityLog[i].QuestsCompleted += questsCompleted
			u.ActivityLog[i].XPEarned += xpEarned
			return
		}
	}
	u.ActivityLog = append(u.ActivityLog, ActivityEntry{
		Date:            today,
		QuestsCompleted: questsCompleted,
		XPEarned:        xpEarned,
	})
}

// UpdateStreak advances the login streak based on calendar-day deltas.
// Same-day logins leave the streak untouched, a one-day gap extends it,
// anything longer resets it to 1.
func (u *User) UpdateStreak(now time.Time) {
	today := midnight(now)

	if u.LastLoginDate == nil {
		u.StreakCount = 1
		if u.LongestStreak < 1 {
			u.LongestStreak = 1
		}
		u.LastLoginDate = &today
		return
	}

	lastLogin := midnight(*u.LastLoginDate)
	diffDays := int(today.Sub(lastLogin).Hours() / 24)

	switch {
	case diffDays == 1:
		u.StreakCount++
		if u.StreakCount > u.LongestStreak {
			u.LongestStreak = u.StreakCount
		}
	case diffDays > 1:
		u.StreakCount = 1
	}

	u.LastLoginDate = &today
}
