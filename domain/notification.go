package domain

import "time"

// NotificationType mirrors the severity values used by the feed endpoint.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

// Notification is a single feed entry. The server owns the canonical copy;
// the client list is a cache rebuilt on every poll.
type Notification struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	TargetURL string           `json:"target_url,omitempty"`
}

// Feed is the channel's current view of the notification list plus the
// server-side unread counter. UnreadCount is never derived from the list:
// the list may be paginated while the counter covers the full unread set.
type Feed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
