package levels

import (
	"testing"

	"devstep/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanMentorThreshold(t *testing.T) {
	if CanMentor(&models.User{Level: 4}) {
		t.Error("level 4 must not mentor")
	}
	if !CanMentor(&models.User{Level: 5}) {
		t.Error("level 5 must mentor")
	}
	if !CanMentor(&models.User{Level: 7}) {
		t.Error("level 7 must mentor")
	}
}

func TestCanMessageLevelBand(t *testing.T) {
	sender := &models.User{ID: primitive.NewObjectID(), Level: 3}

	within := &models.User{ID: primitive.NewObjectID(), Level: 5}
	if !CanMessage(sender, within) {
		t.Error("level 3 should message level 5 (diff 2)")
	}

	above := &models.User{ID: primitive.NewObjectID(), Level: 6}
	if CanMessage(sender, above) {
		t.Error("level 3 should not message level 6 (diff 3)")
	}

	below := &models.User{ID: primitive.NewObjectID(), Level: 2}
	if CanMessage(sender, below) {
		t.Error("messaging below own level is denied outside mentorship")
	}

	same := &models.User{ID: primitive.NewObjectID(), Level: 3}
	if !CanMessage(sender, same) {
		t.Error("same level should be allowed")
	}
}

func TestCanMessageMentorPair(t *testing.T) {
	mentor := &models.User{ID: primitive.NewObjectID(), Level: 7}
	mentee := &models.User{ID: primitive.NewObjectID(), Level: 3}
	mentee.MyMentor = &mentor.ID
	mentor.ActiveMentees = []primitive.ObjectID{mentee.ID}

	if !CanMessage(mentee, mentor) {
		t.Error("mentee should always message their mentor regardless of level gap")
	}
	if !CanMessage(mentor, mentee) {
		t.Error("mentor should always message their mentee")
	}
}

func TestMentorCapacity(t *testing.T) {
	mentor := &models.User{MentorSlots: 3}
	mentor.ActiveMentees = []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	if !HasFreeSlot(mentor) {
		t.Error("a mentor below capacity should accept requests")
	}

	// Accepting the last request brings the mentor to exactly capacity
	mentor.ActiveMentees = append(mentor.ActiveMentees, primitive.NewObjectID())
	if len(mentor.ActiveMentees) != mentor.MentorSlots {
		t.Fatalf("expected mentor at capacity, got %d/%d", len(mentor.ActiveMentees), mentor.MentorSlots)
	}
	if HasFreeSlot(mentor) {
		t.Error("a full mentor must reject further requests")
	}

	if HasFreeSlot(&models.User{}) {
		t.Error("a user with no slots must not take mentees")
	}
}

func TestCanCreateQuestPolicy(t *testing.T) {
	if !CanCreateQuest(&models.User{Role: "admin", Level: 1}) {
		t.Error("admins create quests at any level")
	}
	if !CanCreateQuest(&models.User{Role: "user", IsMentor: true, Level: 3}) {
		t.Error("mentors create quests regardless of level")
	}
	if !CanCreateQuest(&models.User{Role: "user", Level: 5}) {
		t.Error("level 5 creates quests")
	}
	if CanCreateQuest(&models.User{Role: "user", Level: 4}) {
		t.Error("level 4 non-mentor must not create quests")
	}
}
