package domain

import "testing"

func TestDeriveSeverity(t *testing.T) {
	cases := []struct {
		action string
		want   Severity
	}{
		{ActionApproved, SeverityHigh},
		{ActionRejected, SeverityHigh},
		{ActionRequestedMoreInfo, SeverityMedium},
		{ActionNameSelected, SeverityMedium},
		{"viewed_profile", SeverityLow},
		{"", SeverityLow},
	}

	for _, c := range cases {
		if got := DeriveSeverity(c.action); got != c.want {
			t.Errorf("DeriveSeverity(%q) = %q, want %q", c.action, got, c.want)
		}
	}
}

func TestResourceType(t *testing.T) {
	withRequest := &AuditEntry{RelatedRequestID: "req_1"}
	if got := ResourceType(withRequest); got != ResourceVerificationRequest {
		t.Errorf("expected %q, got %q", ResourceVerificationRequest, got)
	}

	withoutRequest := &AuditEntry{}
	if got := ResourceType(withoutRequest); got != ResourceUserAction {
		t.Errorf("expected %q, got %q", ResourceUserAction, got)
	}
}
