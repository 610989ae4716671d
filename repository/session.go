package repository

import (
	"context"

	"github.com/fastygo/storefront/domain"
)

// SessionRepository is the persisted mirror of the in-memory session.
// It holds at most one record: the mirror is write-through only, never a
// second writer, and Delete removes the record entirely rather than
// overwriting it with empty values.
type SessionRepository interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context) error
}
