package levels

import "testing"

func TestResolveBoundaries(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1499, 2},
		{1500, 3},
		{2999, 3},
		{3000, 4},
		{5000, 5},
		{7999, 5},
		{8000, 6},
		{11999, 6},
		{12000, 7},
		{999999, 7},
	}

	for _, c := range cases {
		tier := Resolve(c.xp)
		if tier.Level != c.level {
			t.Errorf("Resolve(%d): expected level %d, got %d", c.xp, c.level, tier.Level)
		}
	}
}

func TestResolveMatchesTierFloor(t *testing.T) {
	// The resolved tier must be the unique one whose floor is the greatest floor <= xp
	for _, tier := range Table {
		got := Resolve(tier.MinXP)
		if got.Level != tier.Level {
			t.Errorf("Resolve(%d): floor value should belong to level %d, got %d", tier.MinXP, tier.Level, got.Level)
		}
	}
}

func TestTierByLevel(t *testing.T) {
	tier, err := TierByLevel(5)
	if err != nil {
		t.Fatalf("TierByLevel(5) returned error: %v", err)
	}
	if tier.Name != "The Corporate Scout" || tier.MinXP != 5000 {
		t.Errorf("unexpected tier 5: %+v", tier)
	}

	if _, err := TierByLevel(0); err == nil {
		t.Error("TierByLevel(0) should fail")
	}
	if _, err := TierByLevel(8); err == nil {
		t.Error("TierByLevel(8) should fail")
	}
}

func TestXPToNext(t *testing.T) {
	if got := XPToNext(1, 100); got != 400 {
		t.Errorf("XPToNext(1, 100): expected 400, got %d", got)
	}
	if got := XPToNext(7, 15000); got != 0 {
		t.Errorf("XPToNext(7, 15000): expected 0 at top tier, got %d", got)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(1, 250); got != 50 {
		t.Errorf("Progress(1, 250): expected 50, got %f", got)
	}
	if got := Progress(7, 20000); got != 100 {
		t.Errorf("Progress(7, 20000): expected 100 at top tier, got %f", got)
	}
	if got := Progress(2, 2000); got != 100 {
		t.Errorf("Progress(2, 2000): expected cap at 100, got %f", got)
	}
}

func TestCanPerformAction(t *testing.T) {
	if CanPerformAction(4, "create_quests") {
		t.Error("level 4 should not create quests")
	}
	if !CanPerformAction(5, "create_quests") {
		t.Error("level 5 should create quests")
	}
	if CanPerformAction(1, "message") {
		t.Error("level 1 should not message")
	}
	if !CanPerformAction(2, "message") {
		t.Error("level 2 should message")
	}
	if !CanPerformAction(1, "unknown_action") {
		t.Error("unknown actions should default to level 1")
	}
}
