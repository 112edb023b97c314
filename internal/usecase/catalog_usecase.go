package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"undulcito/internal/domain/catalog"
	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
)

// CatalogSnapshot is the storefront's view of the catalog at one moment.
type CatalogSnapshot struct {
	Products   []*entity.Product `json:"products"`
	Categories []string          `json:"categories"`
}

type CatalogListener func(CatalogSnapshot)

// CatalogUseCase keeps the public catalog projection current from the
// product and category subscriptions and notifies listeners on each change.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository

	mu         sync.RWMutex
	visible    []*entity.Product
	categories []*entity.Category
	loaded     struct{ products, categories bool }

	listenersMu sync.Mutex
	listeners   map[int]CatalogListener
	nextID      int

	// notifyMu orders deliveries: a snapshot is taken and dispatched
	// before the next one is taken.
	notifyMu sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewCatalogUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		listeners:    make(map[int]CatalogListener),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start subscribes to both collections. The returned Subscription stops both.
func (uc *CatalogUseCase) Start(ctx context.Context) (repository.Subscription, error) {
	stopProducts, err := uc.productRepo.Watch(ctx, uc.applyProducts)
	if err != nil {
		return nil, errors.Internal("Failed to subscribe to products", err)
	}

	stopCategories, err := uc.categoryRepo.Watch(ctx, uc.applyCategories)
	if err != nil {
		stopProducts()
		return nil, errors.Internal("Failed to subscribe to categories", err)
	}

	logger.Info("Catalog subscriptions started")

	var once sync.Once
	return func() {
		once.Do(func() {
			stopProducts()
			stopCategories()
			logger.Info("Catalog subscriptions stopped")
		})
	}, nil
}

func (uc *CatalogUseCase) applyProducts(products []*entity.Product) {
	visible := catalog.Visible(products)

	uc.mu.Lock()
	uc.visible = visible
	uc.loaded.products = true
	uc.mu.Unlock()

	uc.notify()
}

func (uc *CatalogUseCase) applyCategories(categories []*entity.Category) {
	uc.mu.Lock()
	uc.categories = categories
	uc.loaded.categories = true
	uc.mu.Unlock()

	uc.notify()
}

// Listen registers fn for every catalog change. When the catalog is already
// loaded fn is called once right away with the current snapshot.
func (uc *CatalogUseCase) Listen(fn CatalogListener) repository.Subscription {
	uc.listenersMu.Lock()
	id := uc.nextID
	uc.nextID++
	uc.listeners[id] = fn
	uc.listenersMu.Unlock()

	uc.notifyMu.Lock()
	if uc.Ready() {
		fn(uc.Snapshot())
	}
	uc.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			uc.listenersMu.Lock()
			delete(uc.listeners, id)
			uc.listenersMu.Unlock()
		})
	}
}

func (uc *CatalogUseCase) notify() {
	uc.notifyMu.Lock()
	defer uc.notifyMu.Unlock()

	snapshot := uc.Snapshot()

	uc.listenersMu.Lock()
	fns := make([]CatalogListener, 0, len(uc.listeners))
	for _, fn := range uc.listeners {
		fns = append(fns, fn)
	}
	uc.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Ready reports whether both subscriptions have delivered at least once.
func (uc *CatalogUseCase) Ready() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.loaded.products && uc.loaded.categories
}

func (uc *CatalogUseCase) Snapshot() CatalogSnapshot {
	return CatalogSnapshot{
		Products:   uc.Products(catalog.AllCategory, ""),
		Categories: uc.Categories(),
	}
}

// Products returns visible products, newest first, filtered by category and
// a case-insensitive name search.
func (uc *CatalogUseCase) Products(category, search string) []*entity.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return catalog.Filter(uc.visible, category, search)
}

func (uc *CatalogUseCase) Categories() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return catalog.CategoryNames(uc.categories)
}

func (uc *CatalogUseCase) BestSellers() []*entity.Product {
	uc.mu.RLock()
	visible := uc.visible
	uc.mu.RUnlock()

	uc.rngMu.Lock()
	defer uc.rngMu.Unlock()
	return catalog.BestSellers(visible, catalog.BestSellerLimit, uc.rng)
}

// Product is a point query for the public product page. Out-of-stock
// products are reported as not found.
func (uc *CatalogUseCase) Product(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}
