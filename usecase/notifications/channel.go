// Package notifications maintains the client's view of the remote
// notification feed: an ordered list plus the server-owned unread counter,
// refreshed on a fixed interval for as long as the channel runs. Polling
// does not depend on a session being present; the server answers guests
// with an empty feed.
package notifications

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/pkg/httpcontext"
	"github.com/fastygo/storefront/repository"
)

// Channel polls the feed and serves snapshots to readers. Single writer
// (the poll loop), many readers.
type Channel struct {
	feed     repository.NotificationFeed
	ctxs     *httpcontext.Builder
	interval time.Duration
	logger   *zap.Logger

	mu    sync.RWMutex
	state domain.Feed
	open  bool

	refreshCh chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// New creates a Channel polling feed every interval.
func New(feed repository.NotificationFeed, ctxs *httpcontext.Builder, interval time.Duration, logger *zap.Logger) *Channel {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if ctxs == nil {
		ctxs = httpcontext.NewBuilder(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{
		feed:      feed,
		ctxs:      ctxs,
		interval:  interval,
		logger:    logger,
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the poll loop. The first refresh happens immediately.
func (c *Channel) Start() {
	go c.loop()
}

// Stop cancels the poll loop. Idempotent; no refresh begins after it
// returns, though one already in flight may still finish.
func (c *Channel) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

// Snapshot returns a copy of the current feed state.
func (c *Channel) Snapshot() domain.Feed {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.Feed{
		Notifications: append([]domain.Notification(nil), c.state.Notifications...),
		UnreadCount:   c.state.UnreadCount,
	}
}

// UnreadCount returns the server-owned unread counter as of the last
// successful poll.
func (c *Channel) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.UnreadCount
}

// SetOpen records whether the notification surface is open in the UI.
// Purely informational: polling runs either way.
func (c *Channel) SetOpen(open bool) {
	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
}

func (c *Channel) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

// MarkRead asks the server to mark one notification read and schedules an
// immediate re-poll to reconcile, whether or not the request succeeded.
// The local copy is never flipped optimistically: the unread counter is
// server-owned and a local guess would desync list and counter.
func (c *Channel) MarkRead(ctx context.Context, id int64) error {
	reqCtx, cancel := c.ctxs.Outbound(ctx)
	defer cancel()

	err := c.feed.MarkRead(reqCtx, id)
	if err != nil {
		c.logger.Warn("mark-read failed", zap.Int64("notification_id", id), zap.Error(err))
	}
	c.requestRefresh()
	return err
}

// MarkAllRead asks the server to mark the whole feed read, then reconciles
// like MarkRead.
func (c *Channel) MarkAllRead(ctx context.Context) error {
	reqCtx, cancel := c.ctxs.Outbound(ctx)
	defer cancel()

	err := c.feed.MarkAllRead(reqCtx)
	if err != nil {
		c.logger.Warn("mark-all-read failed", zap.Error(err))
	}
	c.requestRefresh()
	return err
}

func (c *Channel) requestRefresh() {
	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
}

func (c *Channel) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.refresh()
	for {
		select {
		case <-ticker.C:
			c.refresh()
		case <-c.refreshCh:
			c.refresh()
		case <-c.stopCh:
			return
		}
	}
}

// refresh fetches the list and the counter concurrently and replaces the
// snapshot wholesale when both succeed. Any failure keeps the previous
// state: a failed poll must never clear notifications the user can already
// see, and the next tick retries unconditionally.
func (c *Channel) refresh() {
	ctx, cancel := c.ctxs.Outbound(context.Background())
	defer cancel()

	var (
		wg       sync.WaitGroup
		list     []domain.Notification
		listErr  error
		count    int
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, listErr = c.feed.List(ctx)
	}()
	go func() {
		defer wg.Done()
		count, countErr = c.feed.UnreadCount(ctx)
	}()
	wg.Wait()

	if listErr != nil || countErr != nil {
		c.logger.Warn("notification poll failed, keeping previous state",
			zap.NamedError("list_error", listErr),
			zap.NamedError("count_error", countErr))
		return
	}

	c.mu.Lock()
	c.state = domain.Feed{
		Notifications: list,
		UnreadCount:   count,
	}
	c.mu.Unlock()
}
