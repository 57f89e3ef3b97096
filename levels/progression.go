package levels

import (
	"fmt"
	"time"

	"devstep/models"
)

// MentorUnlockLevel is where mentor eligibility switches on permanently
const MentorUnlockLevel = 5

// DefaultMentorSlots is granted when eligibility is first unlocked
const DefaultMentorSlots = 3

// ChangeResult describes what an XP change did to a user
type ChangeResult struct {
	XPEarned     int
	TotalXP      int
	OldLevel     int
	NewLevel     int
	NewLevelName string
	LeveledUp    bool
	NewBadges    []models.Badge
	NewArtifacts []models.Artifact
}

// ApplyXPChange credits delta XP to the user and runs the level-up state
// machine: the level is re-resolved from total XP, and every tier crossed by
// this change awards its badge (idempotent by name) and artifact. Level never
// decreases. Crossing the mentor unlock level sets canMentor permanently and
// grants default slots unless the mentor already customized them.
func ApplyXPChange(u *models.User, delta int, now time.Time) ChangeResult {
	res := ChangeResult{
		XPEarned: delta,
		OldLevel: u.Level,
	}

	u.XP += delta
	if u.XP < 0 {
		u.XP = 0
	}
	res.TotalXP = u.XP

	tier := Resolve(u.XP)

	// No de-leveling path: a lower resolved tier leaves the stored level alone
	if tier.Level > u.Level {
		// Award every crossed tier, not just the final one, so a multi-tier
		// jump still grants intermediate badges and artifacts
		for lvl := u.Level + 1; lvl <= tier.Level; lvl++ {
			crossed := Table[lvl-1]

			if !hasBadge(u, crossed.Badge) {
				badge := models.Badge{
					Name:        crossed.Badge,
					Description: fmt.Sprintf("Unlocked by reaching Level %d", crossed.Level),
					Icon:        fmt.Sprintf("level-%d-badge", crossed.Level),
					UnlockedAt:  now,
				}
				u.Badges = append(u.Badges, badge)
				res.NewBadges = append(res.NewBadges, badge)
			}

			artifact := models.Artifact{
				Name:        artifactName(crossed.Level),
				Description: fmt.Sprintf("Earned by reaching Level %d", crossed.Level),
				Level:       crossed.Level,
				UnlockedAt:  now,
			}
			u.Artifacts = append(u.Artifacts, artifact)
			res.NewArtifacts = append(res.NewArtifacts, artifact)
		}

		u.Level = tier.Level
		res.LeveledUp = true
	}

	// canMentor is monotone once unlocked
	if u.Level >= MentorUnlockLevel {
		u.CanMentor = true
		if u.MentorSlots == 0 {
			u.MentorSlots = DefaultMentorSlots
		}
	}

	// Denormalized name tracks the stored level
	if t, err := TierByLevel(u.Level); err == nil {
		u.CurrentLevelName = t.Name
	}
	res.NewLevel = u.Level
	res.NewLevelName = u.CurrentLevelName

	return res
}

func hasBadge(u *models.User, name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Named artifacts for the milestone levels, trophies otherwise
func artifactName(level int) string {
	switch level {
	case 3:
		return "The Golden Keyboard"
	case 7:
		return "The Offer Letter Cape"
	default:
		return fmt.Sprintf("Level %d Trophy", level)
	}
}
