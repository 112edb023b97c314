package repository

import (
	"context"
	stderrors "errors"
	"strings"
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

const productsCollection = "products"

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(productsCollection)
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	doc := r.collection().NewDoc()

	// Zero timestamps are filled in by the server.
	product.CreatedAt = time.Time{}
	product.UpdatedAt = time.Time{}

	if _, err := doc.Create(ctx, product); err != nil {
		return errors.Internal("Failed to create product", err)
	}
	product.ID = doc.ID

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	return decodeProduct(doc)
}

func (r *firestoreProductRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	docs, err := r.collection().OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list products", err)
	}
	return decodeProducts(docs)
}

func (r *firestoreProductRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) error {
	_, err := r.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: patch.Name},
		{Path: "price", Value: patch.Price},
		{Path: "category", Value: patch.Category},
		{Path: "image", Value: patch.Image},
		{Path: "description", Value: patch.Description},
		{Path: "features", Value: patch.Features},
		{Path: "stock", Value: patch.Stock},
		{Path: "isBestSeller", Value: patch.IsBestSeller},
		{Path: "bestSellerOrder", Value: patch.BestSellerOrder},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	docs, err := r.collection().Where("category", "==", category).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count products by category", err)
	}
	return len(docs), nil
}

func (r *firestoreProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	var newStock int

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.collection().Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Product", err)
			}
			return err
		}

		product, err := decodeProduct(doc)
		if err != nil {
			return err
		}

		newStock = product.Stock - quantity
		if newStock < 0 {
			return errors.InsufficientStock(product.Stock, quantity)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "stock", Value: newStock},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, errors.Internal("Failed to record sale", err)
	}

	return newStock, nil
}

func (r *firestoreProductRepository) Watch(ctx context.Context, onChange func([]*entity.Product)) (repository.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := r.collection().OrderBy("createdAt", firestore.Desc).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if err == iterator.Done || ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("products listener stopped: %v", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Warn("products snapshot read failed: %v", err)
				continue
			}
			products, err := decodeProducts(docs)
			if err != nil {
				logger.Warn("products snapshot decode failed: %v", err)
				continue
			}
			onChange(products)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product.ID = doc.Ref.ID
	if product.Stock < 0 {
		product.Stock = 0
	}
	product.Name = strings.TrimSpace(product.Name)
	return &product, nil
}

func decodeProducts(docs []*firestore.DocumentSnapshot) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
