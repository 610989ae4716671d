package httpapi

import (
	"context"
	"fmt"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/repository"
)

type notificationRepository struct {
	client *Client
}

// NewNotificationRepository binds the feed contract to the remote API.
func NewNotificationRepository(client *Client) repository.NotificationFeed {
	return &notificationRepository{client: client}
}

// List returns the feed in server order; the channel never re-sorts it.
func (r *notificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	var payload listPayload
	if err := r.client.getJSON(ctx, "/notifications/", &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var payload unreadCountPayload
	if err := r.client.getJSON(ctx, "/notifications/unread-count/", &payload); err != nil {
		return 0, err
	}
	return payload.UnreadCount, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.client.post(ctx, fmt.Sprintf("/notifications/%d/mark-read/", id))
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	return r.client.post(ctx, "/notifications/mark-all-read/")
}
