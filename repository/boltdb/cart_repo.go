package boltdb

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/repository"
)

type cartRepository struct {
	db     *bolt.DB
	bucket []byte
}

// NewCartRepository creates a Bolt-backed cart store keyed by line-item id.
func NewCartRepository(db *bolt.DB, bucket string) repository.CartRepository {
	if bucket == "" {
		bucket = "cart"
	}
	return &cartRepository{
		db:     db,
		bucket: []byte(bucket),
	}
}

func (r *cartRepository) Items(ctx context.Context) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []domain.CartItem
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(r.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item domain.CartItem
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

func (r *cartRepository) Put(ctx context.Context, item *domain.CartItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil || item.ID == "" {
		return domain.NewError(domain.ErrCodeInvalid, "cart item requires an id")
	}
	item.Touch()

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(item.ID), payload)
	})
}

func (r *cartRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Delete([]byte(id))
	})
}

// Clear drops every line item. Safe to call on an already-empty cart and
// after a new session has started.
func (r *cartRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(r.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(r.bucket)
		return err
	})
}
