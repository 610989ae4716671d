// Package cart is the locally held shopping cart. It is a separate store
// from the session: the session emits a logged-out event, the cart clears
// itself in response, and nothing in the cart ever reaches back into the
// session.
package cart

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/repository"
)

type UseCase struct {
	items  repository.CartRepository
	logger *zap.Logger
}

func New(items repository.CartRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		items:  items,
		logger: logger,
	}
}

// Add stores a line item, assigning an id when the caller did not.
func (uc *UseCase) Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Touch()
	if err := uc.items.Put(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (uc *UseCase) Items(ctx context.Context) ([]domain.CartItem, error) {
	return uc.items.Items(ctx)
}

func (uc *UseCase) Remove(ctx context.Context, id string) error {
	return uc.items.Remove(ctx, id)
}

// Clear discards every line item. Idempotent and safe to run after a new
// session has already started, which makes it a valid fire-and-forget
// logout side effect.
func (uc *UseCase) Clear(ctx context.Context) error {
	if err := uc.items.Clear(ctx); err != nil {
		return err
	}
	uc.logger.Info("cart cleared")
	return nil
}
