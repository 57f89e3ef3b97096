package levels

import (
	"testing"
	"time"

	"devstep/models"
)

func newTestUser(level, xp int) *models.User {
	name := ""
	if t, err := TierByLevel(level); err == nil {
		name = t.Name
	}
	return &models.User{
		Level:            level,
		XP:               xp,
		CurrentLevelName: name,
	}
}

func TestApplyXPChangeNoLevelUp(t *testing.T) {
	u := newTestUser(1, 100)
	res := ApplyXPChange(u, 200, time.Now())

	if res.LeveledUp {
		t.Error("300 XP should not level up")
	}
	if u.XP != 300 || u.Level != 1 {
		t.Errorf("expected xp=300 level=1, got xp=%d level=%d", u.XP, u.Level)
	}
	if len(res.NewBadges) != 0 || len(res.NewArtifacts) != 0 {
		t.Error("no badges or artifacts should be awarded without a level-up")
	}
}

func TestApplyXPChangeSingleLevelUp(t *testing.T) {
	u := newTestUser(1, 400)
	res := ApplyXPChange(u, 150, time.Now())

	if !res.LeveledUp {
		t.Fatal("crossing 500 XP should level up")
	}
	if u.Level != 2 || u.CurrentLevelName != "The Architect" {
		t.Errorf("expected level 2 The Architect, got %d %q", u.Level, u.CurrentLevelName)
	}
	if len(res.NewBadges) != 1 || res.NewBadges[0].Name != "Logic Master" {
		t.Errorf("expected Logic Master badge, got %+v", res.NewBadges)
	}
	if len(res.NewArtifacts) != 1 || res.NewArtifacts[0].Level != 2 {
		t.Errorf("expected one level-2 artifact, got %+v", res.NewArtifacts)
	}
}

func TestApplyXPChangeMultiTierJump(t *testing.T) {
	// One award jumping from level 1 to level 3 must grant both crossed tiers
	u := newTestUser(1, 0)
	res := ApplyXPChange(u, 2000, time.Now())

	if u.Level != 3 {
		t.Fatalf("expected level 3, got %d", u.Level)
	}
	if len(res.NewBadges) != 2 {
		t.Fatalf("expected 2 badges for the crossed tiers, got %d", len(res.NewBadges))
	}
	if res.NewBadges[0].Name != "Logic Master" || res.NewBadges[1].Name != "Ship It!" {
		t.Errorf("unexpected badges: %+v", res.NewBadges)
	}
	if len(res.NewArtifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(res.NewArtifacts))
	}
	if res.NewArtifacts[1].Name != "The Golden Keyboard" {
		t.Errorf("level 3 artifact should be The Golden Keyboard, got %q", res.NewArtifacts[1].Name)
	}
}

func TestApplyXPChangeBadgeDedup(t *testing.T) {
	u := newTestUser(1, 400)
	u.Badges = []models.Badge{{Name: "Logic Master"}}

	res := ApplyXPChange(u, 200, time.Now())
	if len(res.NewBadges) != 0 {
		t.Errorf("existing badge must not be granted again, got %+v", res.NewBadges)
	}
	if len(u.Badges) != 1 {
		t.Errorf("badges should not grow on duplicate, got %d", len(u.Badges))
	}
	// The artifact is still granted for the newly reached level
	if len(res.NewArtifacts) != 1 {
		t.Errorf("artifact should still be granted, got %d", len(res.NewArtifacts))
	}
}

func TestMentorUnlock(t *testing.T) {
	u := newTestUser(4, 4900)
	res := ApplyXPChange(u, 200, time.Now())

	if !res.LeveledUp || u.Level != 5 {
		t.Fatalf("expected level 5, got %d", u.Level)
	}
	if !u.CanMentor {
		t.Error("canMentor should unlock at level 5")
	}
	if u.MentorSlots != DefaultMentorSlots {
		t.Errorf("expected %d default mentor slots, got %d", DefaultMentorSlots, u.MentorSlots)
	}
}

func TestMentorSlotsNotClobbered(t *testing.T) {
	// A mentor who customized their slots keeps them across further XP changes
	u := newTestUser(5, 5000)
	u.CanMentor = true
	u.MentorSlots = 5

	ApplyXPChange(u, 3000, time.Now())
	if u.MentorSlots != 5 {
		t.Errorf("customized mentor slots must survive, got %d", u.MentorSlots)
	}
	if !u.CanMentor {
		t.Error("canMentor is monotone")
	}
}

func TestLevelNeverDecreases(t *testing.T) {
	u := newTestUser(3, 1600)
	ApplyXPChange(u, -1000, time.Now())

	if u.Level != 3 {
		t.Errorf("level must never decrease, got %d", u.Level)
	}
	if u.CurrentLevelName != "The Builder" {
		t.Errorf("level name must track the stored level, got %q", u.CurrentLevelName)
	}
}

func TestXPFlooredAtZero(t *testing.T) {
	u := newTestUser(1, 50)
	res := ApplyXPChange(u, -200, time.Now())

	if u.XP != 0 {
		t.Errorf("xp should floor at 0, got %d", u.XP)
	}
	if res.TotalXP != 0 {
		t.Errorf("result total should floor at 0, got %d", res.TotalXP)
	}
}
