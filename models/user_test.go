package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateStreakFirstLogin(t *testing.T) {
	u := &User{}
	u.UpdateStreak(time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC))

	if u.StreakCount != 1 {
		t.Errorf("first login starts a streak of 1, got %d", u.StreakCount)
	}
	if u.LongestStreak != 1 {
		t.Errorf("longest streak should be 1, got %d", u.LongestStreak)
	}
	if u.LastLoginDate == nil || u.LastLoginDate.Hour() != 0 {
		t.Error("last login date should be truncated to midnight")
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	u := &User{}
	u.UpdateStreak(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	u.UpdateStreak(time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC))
	u.UpdateStreak(time.Date(2024, 3, 12, 1, 0, 0, 0, time.UTC))

	if u.StreakCount != 3 {
		t.Errorf("three consecutive days should give streak 3, got %d", u.StreakCount)
	}
	if u.LongestStreak != 3 {
		t.Errorf("longest streak should track, got %d", u.LongestStreak)
	}
}

func TestUpdateStreakSameDay(t *testing.T) {
	u := &User{}
	u.UpdateStreak(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	u.UpdateStreak(time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC))

	if u.StreakCount != 1 {
		t.Errorf("same-day login must not extend the streak, got %d", u.StreakCount)
	}
}

func TestUpdateStreakBroken(t *testing.T) {
	u := &User{}
	u.UpdateStreak(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	u.UpdateStreak(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	u.UpdateStreak(time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC))

	if u.StreakCount != 1 {
		t.Errorf("a gap resets the streak to 1, got %d", u.StreakCount)
	}
	if u.LongestStreak != 2 {
		t.Errorf("longest streak keeps its high-water mark, got %d", u.LongestStreak)
	}
}

func TestLogActivityUpsert(t *testing.T) {
	u := &User{}
	morning := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	u.LogActivity(morning, 1, 100)
	u.LogActivity(evening, 1, 250)

	if len(u.ActivityLog) != 1 {
		t.Fatalf("same-day activity should merge into one entry, got %d", len(u.ActivityLog))
	}
	if u.ActivityLog[0].QuestsCompleted != 2 || u.ActivityLog[0].XPEarned != 350 {
		t.Errorf("counters should accumulate, got %+v", u.ActivityLog[0])
	}

	u.LogActivity(nextDay, 1, 50)
	if len(u.ActivityLog) != 2 {
		t.Errorf("a new day gets its own entry, got %d", len(u.ActivityLog))
	}
}

func TestHasCompletedQuest(t *testing.T) {
	done := primitive.NewObjectID()
	other := primitive.NewObjectID()
	u := &User{CompletedQuests: []primitive.ObjectID{done}}

	if !u.HasCompletedQuest(done) {
		t.Error("completed quest should be found")
	}
	if u.HasCompletedQuest(other) {
		t.Error("other quest should not be found")
	}
}

func TestCompletedQuestGuardIsIdempotent(t *testing.T) {
	// A completion appends the quest id; the guard then blocks any repeat,
	// so the same quest can never be awarded twice
	questID := primitive.NewObjectID()
	u := &User{}

	if u.HasCompletedQuest(questID) {
		t.Fatal("fresh user has not completed the quest")
	}
	u.CompletedQuests = append(u.CompletedQuests, questID)

	if !u.HasCompletedQuest(questID) {
		t.Error("second attempt must be refused by the completed-set check")
	}
	if len(u.CompletedQuests) != 1 {
		t.Errorf("completed set should hold one entry, got %d", len(u.CompletedQuests))
	}
}
