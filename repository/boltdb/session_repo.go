package boltdb

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/repository"
)

// sessionKey is the single fixed record key: the mirror holds at most one
// session, written through on every transition and removed on logout.
var sessionKey = []byte("current")

type sessionRepository struct {
	db     *bolt.DB
	bucket []byte
}

// NewSessionRepository creates a Bolt-backed persisted session mirror.
func NewSessionRepository(db *bolt.DB, bucket string) repository.SessionRepository {
	if bucket == "" {
		bucket = "session"
	}
	return &sessionRepository{
		db:     db,
		bucket: []byte(bucket),
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	if err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(r.bucket).Get(sessionKey); v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, domain.ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil {
		return domain.NewError(domain.ErrCodeInvalid, "nil session")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put(sessionKey, payload)
	})
}

// Delete removes the record entirely. A missing record is not an error,
// so logout stays idempotent.
func (r *sessionRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Delete(sessionKey)
	})
}
