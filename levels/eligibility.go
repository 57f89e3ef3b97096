package levels

import "devstep/models"

// MessageLevelBand is how many levels above their own a user may message
const MessageLevelBand = 2

// CanMentor reports mentor eligibility: level 5 and up
func CanMentor(u *models.User) bool {
	return u.Level >= MentorUnlockLevel
}

// CanMessage applies the messaging gate: a mentor-mentee pair may always
// message each other; otherwise the target must be at most MessageLevelBand
// levels above the sender and not below them.
func CanMessage(sender, target *models.User) bool {
	if sender.MyMentor != nil && *sender.MyMentor == target.ID {
		return true
	}
	if sender.HasMentee(target.ID) {
		return true
	}

	diff := target.Level - sender.Level
	return diff >= 0 && diff <= MessageLevelBand
}

// HasFreeSlot reports whether a mentor can take on another mentee
func HasFreeSlot(mentor *models.User) bool {
	return len(mentor.ActiveMentees) < mentor.MentorSlots
}

// CanCreateQuest is the quest authoring policy: admins, mentors, and anyone
// at the quest-creation level or above.
func CanCreateQuest(u *models.User) bool {
	if u.Role == "admin" || u.Role == "mentor" {
		return true
	}
	if u.IsMentor {
		return true
	}
	return CanPerformAction(u.Level, "create_quests")
}
