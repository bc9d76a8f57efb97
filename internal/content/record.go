package content

import (
	"context"
	"time"
)

// Record is a stored content item.
type Record struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Body        string    `db:"body" json:"body"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Input is the writable part of a Record.
// ID is optional on create and must match on update.
type Input struct {
	ID          string `json:"id" sanitize:"trim"`
	Name        string `json:"name" sanitize:"trim,strip"`
	Description string `json:"description" sanitize:"trim,html"`
	Body        string `json:"body"`
}

// ListOptions filters and pages List.
type ListOptions struct {
	// Query matches a substring of the name or the identifier.
	Query  string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func (o ListOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultListLimit
	case o.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return o.Limit
	}
}

// Store persists records per resource. Resource names reach a Store only
// after the Registry accepted them.
type Store interface {
	List(ctx context.Context, resource string, opts ListOptions) ([]Record, error)
	Get(ctx context.Context, resource, id string) (Record, error)
	// Create returns ErrConflict when id is taken.
	Create(ctx context.Context, resource string, rec Record) (Record, error)
	// Update changes name, description and body. It returns ErrNotFound
	// when no record has rec.ID.
	Update(ctx context.Context, resource string, rec Record) (Record, error)
	Delete(ctx context.Context, resource, id string) error
}
