package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from POStatus
		to   POStatus
		want bool
	}{
		{"draft to ordered", POStatusDraft, POStatusOrdered, true},
		{"draft to cancelled", POStatusDraft, POStatusCancelled, true},
		{"draft to shipped", POStatusDraft, POStatusShipped, false},
		{"draft to received", POStatusDraft, POStatusReceived, false},
		{"ordered to shipped", POStatusOrdered, POStatusShipped, true},
		{"ordered to cancelled", POStatusOrdered, POStatusCancelled, true},
		{"ordered to draft", POStatusOrdered, POStatusDraft, false},
		{"ordered to received", POStatusOrdered, POStatusReceived, false},
		{"shipped to received", POStatusShipped, POStatusReceived, true},
		{"shipped to cancelled", POStatusShipped, POStatusCancelled, false},
		{"received is terminal", POStatusReceived, POStatusCancelled, false},
		{"received cannot reopen", POStatusReceived, POStatusDraft, false},
		{"cancelled is terminal", POStatusCancelled, POStatusOrdered, false},
		{"no self transition", POStatusDraft, POStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPOStatusTerminal(t *testing.T) {
	for _, s := range []POStatus{POStatusReceived, POStatusCancelled} {
		if !s.Terminal() {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	for _, s := range []POStatus{POStatusDraft, POStatusOrdered, POStatusShipped} {
		if s.Terminal() {
			t.Errorf("expected %q not to be terminal", s)
		}
	}
}

func TestPOStatusMutable(t *testing.T) {
	if !POStatusDraft.Mutable() {
		t.Error("draft orders must allow item mutation")
	}
	for _, s := range []POStatus{POStatusOrdered, POStatusShipped, POStatusReceived, POStatusCancelled} {
		if s.Mutable() {
			t.Errorf("expected %q to reject item mutation", s)
		}
	}
}

func TestParsePOStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    POStatus
		wantErr bool
	}{
		{"draft", POStatusDraft, false},
		{"Ordered", POStatusOrdered, false},
		{"  SHIPPED ", POStatusShipped, false},
		{"received", POStatusReceived, false},
		{"cancelled", POStatusCancelled, false},
		{"canceled", "", true},
		{"", "", true},
		{"closed", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePOStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePOStatus(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePOStatus(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePOStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextStatusesIsACopy(t *testing.T) {
	next := NextStatuses(POStatusDraft)
	if len(next) != 2 {
		t.Fatalf("expected 2 next statuses from draft, got %d", len(next))
	}
	next[0] = POStatusReceived
	if CanTransition(POStatusDraft, POStatusReceived) {
		t.Error("mutating the returned slice must not affect the transition table")
	}
}
