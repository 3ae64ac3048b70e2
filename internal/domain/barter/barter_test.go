package barter

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusAccepted, StatusRejected, true},
		{StatusAccepted, StatusAccepted, false},
		{StatusAccepted, StatusPending, false},
		{StatusAccepted, StatusCancelled, false},
		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusPending, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, c := range cases {
		b := &BarterRequest{Status: c.from}
		if got := b.CanTransitionTo(c.to); got != c.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}

func TestNewBarterRequestDefaults(t *testing.T) {
	b := NewBarterRequest(uuid.New(), uuid.New(), uuid.New(), uuid.New(), "trade?")
	if b.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", b.Status)
	}
	if b.BarterID == uuid.Nil {
		t.Fatal("expected barter id to be set")
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestIsParticipant(t *testing.T) {
	requester := uuid.New()
	owner := uuid.New()
	b := NewBarterRequest(uuid.New(), uuid.New(), requester, owner, "")

	if !b.IsParticipant(requester) || !b.IsParticipant(owner) {
		t.Fatal("expected both parties to be participants")
	}
	if b.IsParticipant(uuid.New()) {
		t.Fatal("expected stranger not to be a participant")
	}
}

func TestNormalizeStatus(t *testing.T) {
	if NormalizeStatus("pending") != StatusPending {
		t.Fatal("expected lower-case input to normalize")
	}
	if !ValidateStatus("accepted") {
		t.Fatal("expected accepted to validate case-insensitively")
	}
	if ValidateStatus("SHIPPED") {
		t.Fatal("expected unknown status to fail validation")
	}
}
