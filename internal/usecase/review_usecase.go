package usecase

import (
	"context"
	"strings"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
	}
}

type CreateReviewInput struct {
	Name    string
	Rating  int
	Comment string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, input CreateReviewInput) (*entity.Review, error) {
	name := strings.TrimSpace(input.Name)
	comment := strings.TrimSpace(input.Comment)

	if name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if comment == "" {
		return nil, errors.BadRequest("Comment is required", nil)
	}
	if input.Rating < entity.MinReviewRating || input.Rating > entity.MaxReviewRating {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	review := &entity.Review{
		Name:    name,
		Rating:  input.Rating,
		Comment: comment,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListLatest(ctx, limit, offset)
}
