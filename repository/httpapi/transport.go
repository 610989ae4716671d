package httpapi

import (
	"encoding/json"

	"github.com/fastygo/storefront/domain"
)

// listPayload accepts both wire shapes the feed endpoint is known to use:
// a bare JSON array and a paginated {"results": [...]} envelope.
type listPayload struct {
	items []domain.Notification
}

func (p *listPayload) UnmarshalJSON(data []byte) error {
	var bare []domain.Notification
	if err := json.Unmarshal(data, &bare); err == nil {
		p.items = bare
		return nil
	}

	var wrapped struct {
		Results []domain.Notification `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.items = wrapped.Results
	return nil
}

type unreadCountPayload struct {
	UnreadCount int `json:"unread_count"`
}
