package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undulcito/pkg/errors"
)

func TestCreateReview(t *testing.T) {
	repo := &fakeReviewRepo{}
	uc := NewReviewUseCase(repo)

	r, err := uc.CreateReview(context.Background(), CreateReviewInput{Name: " Ana ", Rating: 5, Comment: " Deliciosa "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", r.Name)
	assert.Equal(t, "Deliciosa", r.Comment)
	assert.NotEmpty(t, r.ID)
}

func TestCreateReviewValidation(t *testing.T) {
	uc := NewReviewUseCase(&fakeReviewRepo{})
	ctx := context.Background()

	for _, in := range []CreateReviewInput{
		{Name: "", Rating: 4, Comment: "ok"},
		{Name: "Ana", Rating: 4, Comment: "  "},
		{Name: "Ana", Rating: 0, Comment: "ok"},
		{Name: "Ana", Rating: 6, Comment: "ok"},
	} {
		_, err := uc.CreateReview(ctx, in)
		assert.True(t, errors.Is(err, "BAD_REQUEST"), "%+v", in)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	uc := NewReviewUseCase(&fakeReviewRepo{})
	ctx := context.Background()
	for _, name := range []string{"Ana", "Luis", "Carla"} {
		_, err := uc.CreateReview(ctx, CreateReviewInput{Name: name, Rating: 5, Comment: "rico"})
		require.NoError(t, err)
	}

	reviews, total, err := uc.ListReviews(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Carla", reviews[0].Name)
}
