package http

import (
	"fmt"
	"net/http"
	"testing"

	approvaldomain "github.com/wyfcoding/investplatform/internal/approval/domain"
)

func TestWorkflowErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{approvaldomain.ErrUnauthorized, http.StatusForbidden},
		{approvaldomain.ErrNotFound, http.StatusNotFound},
		{approvaldomain.ErrInvalidTransition, http.StatusConflict},
		{approvaldomain.ErrIncompletePayload, http.StatusBadRequest},
		{approvaldomain.ErrPersistence, http.StatusInternalServerError},
		{approvaldomain.ErrPersistence.WithCause(fmt.Errorf("disk full")), http.StatusInternalServerError},
		{fmt.Errorf("plain error"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		status, msg := WorkflowErrorStatus(c.err)
		if status != c.status {
			t.Errorf("WorkflowErrorStatus(%v) = %d, want %d", c.err, status, c.status)
		}
		if msg == "" {
			t.Errorf("message must not be empty for %v", c.err)
		}
	}
}

func TestWorkflowErrorStatusHidesInternals(t *testing.T) {
	wrapped := approvaldomain.ErrPersistence.WithCause(fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))

	_, msg := WorkflowErrorStatus(wrapped)
	if msg != approvaldomain.ErrPersistence.Message {
		t.Fatalf("user-facing message must not leak cause, got %q", msg)
	}
}
