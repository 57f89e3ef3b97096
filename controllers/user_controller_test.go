package controllers

import (
	"testing"

	"devstep/structs"
)

func TestProfileChangesOnlyTouchesProvidedFields(t *testing.T) {
	set := profileChanges(&structs.UpdateProfileRequest{Name: "New Name"})

	if set["name"] != "New Name" {
		t.Errorf("expected name to be set, got %v", set)
	}
	if len(set) != 1 {
		t.Errorf("only provided fields may appear in the update, got %v", set)
	}

	// Progression state is never writable through a profile update
	for _, field := range []string{"xp", "level", "messageCredits", "badges", "completedQuests"} {
		if _, ok := set[field]; ok {
			t.Errorf("profile update must not touch %q", field)
		}
	}
}

func TestProfileChangesEmptyRequest(t *testing.T) {
	set := profileChanges(&structs.UpdateProfileRequest{})
	if len(set) != 0 {
		t.Errorf("empty request should produce no field changes, got %v", set)
	}
}
