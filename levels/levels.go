package levels

import "fmt"

// Tier is one stage of the fixed 7-level progression
type Tier struct {
	Level       int      `json:"level"`
	MinXP       int      `json:"minXP"`
	MaxXP       int      `json:"maxXP"` // exclusive upper bound; -1 means unbounded
	Name        string   `json:"name"`
	Badge       string   `json:"badge"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

// Table is the full progression ladder, ordered by MinXP ascending.
// A user's level is the highest tier whose MinXP is <= their XP.
var Table = []Tier{
	{
		Level: 1, MinXP: 0, MaxXP: 500,
		Name: "The Novice", Badge: "Hello World",
		Features: []string{
			"Access basic quests",
			"Start learning journey",
			"Earn first badges",
		},
		Description: "You are beginning your coding adventure!",
	},
	{
		Level: 2, MinXP: 500, MaxXP: 1500,
		Name: "The Architect", Badge: "Logic Master",
		Features: []string{
			"Unlock intermediate quests",
			"Start messaging users",
			"Earn learning achievements",
		},
		Description: "You're making solid progress!",
	},
	{
		Level: 3, MinXP: 1500, MaxXP: 3000,
		Name: "The Builder", Badge: "Ship It!",
		Features: []string{
			"Access advanced quests",
			"Unlock streak tracking",
			"Earn specialty badges",
		},
		Description: "You've become a true builder!",
	},
	{
		Level: 4, MinXP: 3000, MaxXP: 5000,
		Name: "The Marketer", Badge: "Profile Pro",
		Features: []string{
			"Master-level quests available",
			"Advanced analytics dashboard",
		},
		Description: "You are becoming an expert!",
	},
	{
		Level: 5, MinXP: 5000, MaxXP: 8000,
		Name: "The Corporate Scout", Badge: "Inside Man",
		Features: []string{
			"Create your own quests",
			"Become a mentor (3 mentees)",
			"Design learning paths",
		},
		Description: "You can now guide others!",
	},
	{
		Level: 6, MinXP: 8000, MaxXP: 12000,
		Name: "The Gladiator", Badge: "Battle Ready",
		Features: []string{
			"Create premium quests",
			"Create learning communities",
			"Exclusive achievements",
		},
		Description: "You are a master of your craft!",
	},
	{
		Level: 7, MinXP: 12000, MaxXP: -1,
		Name: "The Legend", Badge: "Hired!",
		Features: []string{
			"Unlimited quest creation",
			"Lead community programs",
			"Hall of fame entry",
		},
		Description: "You are a legend in the community!",
	},
}

// MaxLevel is the top of the ladder
const MaxLevel = 7

// Resolve returns the tier for an XP value: the highest tier whose floor
// is <= xp. A floor value belongs to the higher tier.
func Resolve(xp int) Tier {
	for i := len(Table) - 1; i >= 0; i-- {
		if xp >= Table[i].MinXP {
			return Table[i]
		}
	}
	return Table[0]
}

// TierByLevel looks a tier up by its level number
func TierByLevel(level int) (Tier, error) {
	if level < 1 || level > len(Table) {
		return Tier{}, fmt.Errorf("level %d out of range", level)
	}
	return Table[level-1], nil
}

// XPToNext returns the XP still needed to reach the next tier; 0 at the top
func XPToNext(level, xp int) int {
	tier, err := TierByLevel(level)
	if err != nil || tier.MaxXP < 0 {
		return 0
	}
	if remaining := tier.MaxXP - xp; remaining > 0 {
		return remaining
	}
	return 0
}

// Progress returns the percentage of the way through a tier, capped at 100
func Progress(level, xp int) float64 {
	tier, err := TierByLevel(level)
	if err != nil {
		return 0
	}
	if tier.MaxXP < 0 {
		return 100
	}
	pct := float64(xp-tier.MinXP) / float64(tier.MaxXP-tier.MinXP) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Minimum level required per gated action
var actionLevels = map[string]int{
	"create_quests":   5,
	"mentor":          5,
	"message":         2,
	"streak_tracking": 3,
	"advanced_quests": 3,
	"expert_quests":   4,
	"master_quests":   6,
}

// CanPerformAction reports whether a level unlocks the named action.
// Unknown actions are available from level 1.
func CanPerformAction(level int, action string) bool {
	min, ok := actionLevels[action]
	if !ok {
		min = 1
	}
	return level >= min
}
