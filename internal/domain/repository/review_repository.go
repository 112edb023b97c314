package repository

import (
	"context"

	"undulcito/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// ListLatest returns reviews newest first.
	ListLatest(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error)
}
