package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/pkg/errors"
)

const reviewsCollection = "reviews"

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	doc := r.client.Collection(reviewsCollection).NewDoc()
	review.CreatedAt = time.Time{}

	if _, err := doc.Create(ctx, review); err != nil {
		return errors.Internal("Failed to create review", err)
	}
	review.ID = doc.ID

	return nil
}

func (r *firestoreReviewRepository) ListLatest(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection(reviewsCollection).OrderBy("createdAt", firestore.Desc)

	// Counting reads the whole collection; the review wall stays small.
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var reviews []*entity.Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}
