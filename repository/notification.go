package repository

import (
	"context"

	"github.com/fastygo/storefront/domain"
)

// NotificationFeed is the contract with the remote notification API.
// The server is authoritative: List returns entries in display order and
// UnreadCount reflects the full unread set even when the list is truncated.
type NotificationFeed interface {
	List(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}
