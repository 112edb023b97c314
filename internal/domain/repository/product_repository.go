package repository

import (
	"context"

	"undulcito/internal/domain/entity"
)

// Subscription stops a real-time listener. Calling it more than once is safe.
type Subscription func()

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListAll returns every product, newest first.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, category string) (int, error)
	// DecrementStock atomically subtracts quantity from the product's stock
	// and returns the new value. It writes nothing if the result would be negative.
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)
	// Watch delivers the full product list, newest first, on every change
	// until the returned Subscription is called or ctx ends.
	Watch(ctx context.Context, onChange func([]*entity.Product)) (Subscription, error)
}
