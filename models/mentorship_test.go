package models

import "testing"

func TestMentorshipCanComplete(t *testing.T) {
	for _, status := range []string{MentorshipPending, MentorshipRejected, MentorshipCompleted} {
		m := &Mentorship{Status: status}
		if m.CanComplete() {
			t.Errorf("%s edge must not transition to completed", status)
		}
	}

	m := &Mentorship{Status: MentorshipAccepted}
	if !m.CanComplete() {
		t.Error("accepted edge should complete")
	}
}

func TestMentorshipEndorseOnce(t *testing.T) {
	m := &Mentorship{Status: MentorshipAccepted}
	if !m.CanEndorse() {
		t.Error("an unendorsed edge should accept an endorsement")
	}

	m.IsEndorsed = true
	if m.CanEndorse() {
		t.Error("an endorsed edge must not accept another endorsement")
	}
}
