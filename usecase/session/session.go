// Package session holds the client's single source of truth for who is
// logged in. The store is a small state machine with four transitions
// (login, logout, update-user, set-tokens); every transition runs under one
// lock and recomputes the authenticated flag before the new snapshot
// becomes visible, so no reader ever observes a user without the flag.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/internal/token"
	"github.com/fastygo/storefront/repository"
	"github.com/fastygo/storefront/usecase"
)

// Store owns the current session. It is the only writer; all other
// components read through Snapshot and the accessor methods.
type Store struct {
	repo   repository.SessionRepository
	codec  *token.Codec
	events *usecase.Emitter
	logger *zap.Logger

	mu      sync.RWMutex
	current domain.Session
}

// New constructs a Store starting from an empty session. Call Restore to
// rehydrate from the persisted mirror.
func New(repo repository.SessionRepository, codec *token.Codec, events *usecase.Emitter, logger *zap.Logger) *Store {
	if codec == nil {
		codec = token.NewCodec()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		codec:  codec,
		events: events,
		logger: logger,
	}
}

// Restore rehydrates the session from the persisted mirror, once, at
// startup. The authenticated flag is recomputed from field presence; the
// persisted copy of the flag is never trusted. A missing record leaves the
// session empty and is not an error.
func (s *Store) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	saved, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.current = *saved
	s.current.Recompute()
	s.mu.Unlock()

	s.logger.Info("session restored",
		zap.Bool("authenticated", saved.User != nil && saved.AccessToken != ""))
	return nil
}

// Login replaces the session with the given identity and tokens. An empty
// refresh token is stored as absent.
func (s *Store) Login(ctx context.Context, user domain.User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.current = domain.Session{
		User:         &user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	s.current.Recompute()
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.events != nil {
		s.events.Emit(ctx, usecase.EventLoggedIn)
	}
}

// Logout resets the session to empty, removes the persisted record, and
// emits the logged-out event so dependent stores (the cart) can discard
// their contents. Idempotent: a second call yields the same empty state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = domain.Session{}
	if s.repo != nil {
		if err := s.repo.Delete(ctx); err != nil {
			s.logger.Warn("failed to remove persisted session", zap.Error(err))
		}
	}
	s.mu.Unlock()

	if s.events != nil {
		s.events.Emit(ctx, usecase.EventLoggedOut)
	}
}

// UpdateUser merges the patch into the current user. Without a current
// user this is a silent no-op: the precondition is not expected to fail at
// correct call sites, and failing loudly here could only corrupt state.
func (s *Store) UpdateUser(ctx context.Context, patch domain.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.User == nil {
		return
	}
	merged := patch.Apply(*s.current.User)
	s.current.User = &merged
	s.current.Recompute()
	s.persistLocked(ctx)
}

// SetTokens replaces the access token. The refresh token is replaced only
// when a new value is supplied; an empty value retains the existing one.
// The user is never touched.
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.AccessToken = accessToken
	if refreshToken != "" {
		s.current.RefreshToken = refreshToken
	}
	s.current.Recompute()
	s.persistLocked(ctx)
}

// Snapshot returns a copy of the current session, detached from the store.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// IsAuthenticated reports whether a user and an access token are both present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated
}

// AccessToken returns the current raw access token, or "" when absent.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AccessToken
}

// Claims returns the decoded claims of the current access token, or nil
// when no token is held or it does not decode. Decode failure is not an
// error here: it simply reads as "not authenticated".
func (s *Store) Claims() *domain.TokenClaims {
	raw := s.AccessToken()
	if raw == "" {
		return nil
	}
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil
	}
	return claims
}

// persistLocked writes the current session through to the mirror. The
// in-memory state stays authoritative when the write fails; the failure is
// only logged.
func (s *Store) persistLocked(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snapshot := s.copyLocked()
	if err := s.repo.Save(ctx, &snapshot); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}

func (s *Store) copyLocked() domain.Session {
	snapshot := s.current
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}
