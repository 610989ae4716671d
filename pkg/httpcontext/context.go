package httpcontext

import (
	"context"
	"time"

	"github.com/google/uuid"

	appLogger "github.com/fastygo/storefront/pkg/logger"
)

// Builder produces contexts for outbound API calls: a deadline derived from
// the configured timeout plus a fresh request ID for log correlation.
type Builder struct {
	timeout time.Duration
}

// NewBuilder constructs a Builder using the provided timeout.
func NewBuilder(timeout time.Duration) *Builder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Builder{timeout: timeout}
}

// Outbound derives a request-scoped context from parent. The returned cancel
// func must be called once the request completes.
func (b *Builder) Outbound(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, b.timeout)
	if appLogger.RequestIDFromContext(ctx) == "" {
		ctx = appLogger.ContextWithRequestID(ctx, uuid.NewString())
	}
	return ctx, cancel
}
