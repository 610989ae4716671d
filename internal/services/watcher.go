package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/storefront/internal/token"
)

// SessionControl is the slice of the session store the watcher needs.
type SessionControl interface {
	IsAuthenticated() bool
	AccessToken() string
	Logout(ctx context.Context)
}

// WatcherConfig controls how often token expiry is checked.
type WatcherConfig struct {
	Interval time.Duration
}

// ExpiryWatcher periodically checks whether the held access token has
// silently expired and logs the session out when it has, so the user is
// bounced to the login entry point instead of issuing doomed requests.
// The server still enforces expiry on its own; this is UX only.
type ExpiryWatcher struct {
	sessions SessionControl
	codec    *token.Codec
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      WatcherConfig
}

func NewExpiryWatcher(sessions SessionControl, codec *token.Codec, logger *zap.Logger, cfg WatcherConfig) *ExpiryWatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if codec == nil {
		codec = token.NewCodec()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &ExpiryWatcher{
		sessions: sessions,
		codec:    codec,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		w.Check(ctx)
	})

	return w
}

// Check runs one expiry inspection. Exposed for the scheduler and tests.
func (w *ExpiryWatcher) Check(ctx context.Context) {
	if w == nil || w.sessions == nil {
		return
	}
	if !w.sessions.IsAuthenticated() {
		return
	}
	if w.codec.IsValid(w.sessions.AccessToken(), time.Now()) {
		return
	}
	w.logger.Info("access token expired, logging session out")
	w.sessions.Logout(ctx)
}

// Start launches the cron scheduler.
func (w *ExpiryWatcher) Start() {
	if w == nil || w.cron == nil {
		return
	}
	w.cron.Start()
	w.logger.Info("expiry watcher started", zap.Duration("interval", w.cfg.Interval))
}

// Stop gracefully stops the scheduler, waiting for a running check.
func (w *ExpiryWatcher) Stop(ctx context.Context) {
	if w == nil || w.cron == nil {
		return
	}
	stopCtx := w.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}
