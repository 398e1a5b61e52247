package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusBooked, StatusOngoing, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "pending", "teleported"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusBooked, StatusOngoing},
		{StatusBooked, StatusCancelled},
		{StatusOngoing, StatusCompleted},
		{StatusOngoing, StatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("CanTransition(%q, %q) = false", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		// completion requires passing through ongoing
		{StatusBooked, StatusCompleted},
		{StatusOngoing, StatusBooked},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusOngoing},
		{StatusCancelled, StatusBooked},
		{StatusCancelled, StatusOngoing},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("CanTransition(%q, %q) = true", tr[0], tr[1])
		}
	}
}
