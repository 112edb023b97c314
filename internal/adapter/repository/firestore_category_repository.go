package repository

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
)

const categoriesCollection = "categories"

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(categoriesCollection)
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	doc := r.collection().NewDoc()
	category.CreatedAt = time.Time{}

	if _, err := doc.Create(ctx, category); err != nil {
		return errors.Internal("Failed to create category", err)
	}
	category.ID = doc.ID

	return nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.collection().OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}
	return decodeCategories(docs)
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete category", err)
	}
	return nil
}

func (r *firestoreCategoryRepository) Watch(ctx context.Context, onChange func([]*entity.Category)) (repository.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := r.collection().OrderBy("name", firestore.Asc).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if err == iterator.Done || ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("categories listener stopped: %v", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Warn("categories snapshot read failed: %v", err)
				continue
			}
			categories, err := decodeCategories(docs)
			if err != nil {
				logger.Warn("categories snapshot decode failed: %v", err)
				continue
			}
			onChange(categories)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func decodeCategories(docs []*firestore.DocumentSnapshot) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(docs))
	for _, doc := range docs {
		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, errors.Internal("Failed to parse category data", err)
		}
		category.ID = doc.Ref.ID
		categories = append(categories, &category)
	}
	return categories, nil
}
