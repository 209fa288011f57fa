package domain

import "testing"

func TestStatusesCoverFullEnum(t *testing.T) {
	got := make(map[string]bool)
	for _, s := range Statuses() {
		got[s] = true
	}

	want := []string{
		string(StatusPending),
		string(StatusProcessing),
		string(StatusNameSelected),
		string(StatusCompleted),
		string(StatusRejected),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(got))
	}
	for _, s := range want {
		if !got[s] {
			t.Fatalf("status %s missing from enum", s)
		}
	}
}

func TestHasCandidate(t *testing.T) {
	req := &RegistrationRequest{CandidateNames: []string{"Acme Ltd", "Acme Group Ltd"}}

	if !req.HasCandidate("Acme Ltd") {
		t.Fatal("expected candidate to match")
	}
	if req.HasCandidate("acme ltd") {
		t.Fatal("candidate match must be exact")
	}
	if req.HasCandidate("") {
		t.Fatal("empty name must not match")
	}
}
