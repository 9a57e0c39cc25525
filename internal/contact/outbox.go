package contact

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dbTimeout = 5 * time.Second

	// DefaultPendingLimit caps Pending when the caller passes a non-positive
	// limit.
	DefaultPendingLimit = 100
)

// Outbox stores accepted messages until something delivers them.
type Outbox interface {
	Enqueue(ctx context.Context, msg Message) error
	// Pending returns up to limit queued messages, oldest first. A
	// non-positive limit means DefaultPendingLimit.
	Pending(ctx context.Context, limit int) ([]Message, error)
}

func pendingLimit(limit int) int {
	if limit <= 0 {
		return DefaultPendingLimit
	}
	return limit
}

// MemoryOutbox keeps messages in memory for development and tests.
type MemoryOutbox struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) Enqueue(_ context.Context, msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *MemoryOutbox) Pending(_ context.Context, limit int) ([]Message, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := min(len(o.messages), pendingLimit(limit))
	return append([]Message{}, o.messages[:n]...), nil
}

// PostgresOutbox stores messages in the contact_messages table.
type PostgresOutbox struct {
	pool *pgxpool.Pool
}

func NewPostgresOutbox(pool *pgxpool.Pool) *PostgresOutbox {
	return &PostgresOutbox{pool: pool}
}

func (o *PostgresOutbox) Enqueue(ctx context.Context, msg Message) error {
	if o == nil || o.pool == nil {
		return fmt.Errorf("outbox pool is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := o.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (o *PostgresOutbox) Pending(ctx context.Context, limit int) ([]Message, error) {
	if o == nil || o.pool == nil {
		return nil, fmt.Errorf("outbox pool is nil")
	}
	limit = pendingLimit(limit)

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := o.pool.Query(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contact_messages
		 ORDER BY created_at, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Message, error) {
		var m Message
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan contact messages: %w", err)
	}
	return msgs, nil
}
