package contact_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/p-n-ai/knowledge-hub/internal/contact"
)

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "I would like to know more about the lessons.",
	}
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*contact.Submission)
		want   map[string]string
	}{
		{"valid", func(*contact.Submission) {}, nil},
		{"name missing", func(s *contact.Submission) { s.Name = "   " }, map[string]string{"name": "Name is required"}},
		{"name too short", func(s *contact.Submission) { s.Name = " A " }, map[string]string{"name": "Name must be at least 2 characters long"}},
		{"email missing", func(s *contact.Submission) { s.Email = "" }, map[string]string{"email": "Email is required"}},
		{"email no domain dot", func(s *contact.Submission) { s.Email = "ada@example" }, map[string]string{"email": "Please enter a valid email address"}},
		{"email with space", func(s *contact.Submission) { s.Email = "ada lovelace@example.com" }, map[string]string{"email": "Please enter a valid email address"}},
		{"email padded", func(s *contact.Submission) { s.Email = "  ada@example.com  " }, nil},
		{"message missing", func(s *contact.Submission) { s.Message = "\n\t" }, map[string]string{"message": "Message is required"}},
		{"message too short", func(s *contact.Submission) { s.Message = "   hello    " }, map[string]string{"message": "Message must be at least 10 characters long"}},
		{"everything wrong", func(s *contact.Submission) { *s = contact.Submission{} }, map[string]string{
			"name":    "Name is required",
			"email":   "Email is required",
			"message": "Message is required",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := s.Validate()

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *contact.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if len(verr.Fields) != len(tt.want) {
				t.Fatalf("Fields = %v, want %v", verr.Fields, tt.want)
			}
			for k, v := range tt.want {
				if verr.Fields[k] != v {
					t.Errorf("Fields[%q] = %q, want %q", k, verr.Fields[k], v)
				}
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := (&contact.Submission{}).Validate()
	msg := err.Error()
	if !strings.HasPrefix(msg, "invalid contact submission: email:") {
		t.Errorf("Error() = %q, want fields in sorted order", msg)
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	outbox := contact.NewMemoryOutbox()
	svc := contact.NewService(outbox)

	sub := validSubmission()
	sub.Name = "  Ada Lovelace  "
	msg, err := svc.Submit(ctx, sub)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Errorf("Submit() = %+v, want ID and CreatedAt set", msg)
	}
	if msg.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want trimmed", msg.Name)
	}

	pending, err := outbox.Pending(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != msg.ID {
		t.Errorf("Pending() = %+v", pending)
	}
}

func TestService_SubmitInvalidNotQueued(t *testing.T) {
	ctx := context.Background()
	outbox := contact.NewMemoryOutbox()
	svc := contact.NewService(outbox)

	_, err := svc.Submit(ctx, contact.Submission{Name: "Al"})
	var verr *contact.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v, want *ValidationError", err)
	}
	if pending, _ := outbox.Pending(ctx, 0); len(pending) != 0 {
		t.Errorf("invalid submission was queued: %+v", pending)
	}
}

func TestMemoryOutbox_PendingLimit(t *testing.T) {
	ctx := context.Background()
	outbox := contact.NewMemoryOutbox()
	for _, id := range []string{"a", "b", "c"} {
		outbox.Enqueue(ctx, contact.Message{ID: id})
	}

	got, _ := outbox.Pending(ctx, 2)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Pending(2) = %+v", got)
	}
}

func TestMemoryOutbox_PendingDefaultLimit(t *testing.T) {
	ctx := context.Background()
	outbox := contact.NewMemoryOutbox()
	for i := range contact.DefaultPendingLimit + 5 {
		outbox.Enqueue(ctx, contact.Message{ID: fmt.Sprintf("m%03d", i)})
	}

	for _, limit := range []int{0, -1} {
		got, err := outbox.Pending(ctx, limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != contact.DefaultPendingLimit {
			t.Errorf("Pending(%d) returned %d messages, want %d", limit, len(got), contact.DefaultPendingLimit)
		}
		if got[0].ID != "m000" {
			t.Errorf("Pending(%d)[0].ID = %q, want oldest first", limit, got[0].ID)
		}
	}
}

func TestService_Pending(t *testing.T) {
	ctx := context.Background()
	svc := contact.NewService(contact.NewMemoryOutbox())

	msg, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Pending(ctx, 0)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != msg.ID {
		t.Errorf("Pending() = %+v, want the submitted message", got)
	}
}

func TestPostgresOutbox_NilPool(t *testing.T) {
	outbox := contact.NewPostgresOutbox(nil)
	if err := outbox.Enqueue(context.Background(), contact.Message{ID: "x"}); err == nil {
		t.Fatal("expected error for nil pool")
	}
}
