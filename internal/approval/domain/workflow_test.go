package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestTableNext(t *testing.T) {
	table := Table{
		{From: "pending", Action: ActionApprove, To: "processing"},
		{From: "pending", Action: ActionReject, To: "rejected"},
	}

	next, ok := table.Next("pending", ActionApprove)
	if !ok || next != "processing" {
		t.Fatalf("expected (processing, true), got (%s, %v)", next, ok)
	}

	if _, ok := table.Next("processing", ActionApprove); ok {
		t.Fatal("transition from processing should be illegal")
	}
	if _, ok := table.Next("pending", "complete"); ok {
		t.Fatal("unknown action should be illegal")
	}
}

func TestPayloadField(t *testing.T) {
	var empty Payload
	if empty.Field("selected_name") != "" {
		t.Fatal("nil fields should yield empty string")
	}

	p := Payload{Fields: map[string]string{"selected_name": "Acme"}}
	if p.Field("selected_name") != "Acme" {
		t.Fatal("expected Acme")
	}
}

func TestWorkflowErrorMatching(t *testing.T) {
	wrapped := ErrPersistence.WithCause(fmt.Errorf("connection reset"))

	if !errors.Is(wrapped, ErrPersistence) {
		t.Fatal("wrapped error should match its sentinel by code")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped error should not match a different code")
	}

	var we *WorkflowError
	if !errors.As(wrapped, &we) || we.Code != CodePersistence {
		t.Fatalf("expected code %s, got %+v", CodePersistence, we)
	}
}

func TestWorkflowErrorWithMessage(t *testing.T) {
	custom := ErrIncompletePayload.WithMessage("selected_name is required")

	if !errors.Is(custom, ErrIncompletePayload) {
		t.Fatal("message override must keep the code")
	}
	if custom.Message == ErrIncompletePayload.Message {
		t.Fatal("message should have been replaced")
	}
	// 原始哨兵不受影响
	if ErrIncompletePayload.Message == "selected_name is required" {
		t.Fatal("sentinel must not be mutated")
	}
}
