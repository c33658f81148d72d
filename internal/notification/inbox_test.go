package notification

import (
	"context"
	"testing"
)

func TestMemoryInbox(t *testing.T) {
	ctx := context.Background()
	inbox := NewMemoryInbox()

	first := NewEvent(1, KindAppointmentRequested, "first", "/a")
	second := NewEvent(1, KindAppointmentApproved, "second", "/b")
	other := NewEvent(2, KindAppointmentRejected, "other", "/c")

	for _, ev := range []Event{first, second, other} {
		if err := inbox.Deliver(ctx, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	list, err := inbox.List(ctx, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first for user 1, got %+v", list)
	}

	n, err := inbox.MarkAllSeen(ctx, 1)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 marked, got %d, %v", n, err)
	}

	unseen, _ := inbox.List(ctx, 1, true)
	if len(unseen) != 0 {
		t.Fatalf("expected no unseen items, got %+v", unseen)
	}

	unseen, _ = inbox.List(ctx, 2, true)
	if len(unseen) != 1 || unseen[0].Kind != string(KindAppointmentRejected) {
		t.Fatalf("user 2 must be untouched, got %+v", unseen)
	}
}
