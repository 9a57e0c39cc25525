// Package contact validates contact-form submissions and queues them in an
// outbox for later delivery.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p-n-ai/knowledge-hub/internal/platform/idgen"
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is the raw form input.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize returns the submission with surrounding whitespace removed.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// ValidationError maps form fields to user-facing messages.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid contact submission: " + strings.Join(parts, "; ")
}

// Validate checks a submission after trimming. It returns a
// *ValidationError listing every failing field.
func (s Submission) Validate() error {
	n := s.Normalize()
	fields := map[string]string{}

	switch {
	case n.Name == "":
		fields["name"] = "Name is required"
	case utf8.RuneCountInString(n.Name) < minNameLen:
		fields["name"] = "Name must be at least 2 characters long"
	}

	switch {
	case n.Email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(n.Email):
		fields["email"] = "Please enter a valid email address"
	}

	switch {
	case n.Message == "":
		fields["message"] = "Message is required"
	case utf8.RuneCountInString(n.Message) < minMessageLen:
		fields["message"] = "Message must be at least 10 characters long"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Message is an accepted submission waiting in the outbox.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Service accepts submissions into an Outbox.
type Service struct {
	outbox Outbox
	now    func() time.Time
}

// NewService creates a contact service. A nil outbox uses memory.
func NewService(outbox Outbox) *Service {
	if outbox == nil {
		outbox = NewMemoryOutbox()
	}
	return &Service{outbox: outbox, now: time.Now}
}

// Submit validates and enqueues a submission.
func (s *Service) Submit(ctx context.Context, sub Submission) (Message, error) {
	if err := sub.Validate(); err != nil {
		return Message{}, err
	}
	n := sub.Normalize()

	msg := Message{
		ID:        idgen.New(),
		Name:      n.Name,
		Email:     n.Email,
		Message:   n.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.outbox.Enqueue(ctx, msg); err != nil {
		return Message{}, fmt.Errorf("enqueue contact message: %w", err)
	}

	slog.Info("contact message queued", "id", msg.ID, "message_len", len(msg.Message))
	return msg, nil
}

// Pending lists queued messages awaiting delivery, oldest first.
func (s *Service) Pending(ctx context.Context, limit int) ([]Message, error) {
	msgs, err := s.outbox.Pending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending contact messages: %w", err)
	}
	return msgs, nil
}
