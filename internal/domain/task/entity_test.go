package task

import "testing"

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusAssigned, StatusSubmitted, true},
		{StatusSubmitted, StatusUnderReview, true},
		{StatusUnderReview, StatusCompleted, true},

		{StatusAssigned, StatusCancelled, true},
		{StatusSubmitted, StatusCancelled, true},
		{StatusUnderReview, StatusCancelled, true},

		{StatusAssigned, StatusUnderReview, false},
		{StatusAssigned, StatusCompleted, false},
		{StatusSubmitted, StatusCompleted, false},
		{StatusSubmitted, StatusAssigned, false},
		{StatusUnderReview, StatusSubmitted, false},

		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusAssigned, false},
		{StatusCancelled, StatusSubmitted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusAssigned, StatusSubmitted, StatusUnderReview} {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusUnderReview.Valid() {
		t.Fatalf("under_review must be valid")
	}
	if Status("archived").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}
