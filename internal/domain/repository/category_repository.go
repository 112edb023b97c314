package repository

import (
	"context"

	"undulcito/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// List returns categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, onChange func([]*entity.Category)) (Subscription, error)
}
