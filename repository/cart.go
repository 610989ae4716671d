package repository

import (
	"context"

	"github.com/fastygo/storefront/domain"
)

// CartRepository stores the locally held shopping cart. Clear must be
// idempotent: logout fires it without awaiting and it may run after a new
// session has already started.
type CartRepository interface {
	Items(ctx context.Context) ([]domain.CartItem, error)
	Put(ctx context.Context, item *domain.CartItem) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
