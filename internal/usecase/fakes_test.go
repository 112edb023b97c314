package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/internal/domain/service"
	"undulcito/pkg/errors"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product // newest first
	nextID   int
	writes   int
	watchers map[int]func([]*entity.Product)
	stopped  int
	getCalls int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	return &fakeProductRepo{products: products, watchers: map[int]func([]*entity.Product){}}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.mu.Lock()
	r.nextID++
	r.writes++
	p.ID = fmt.Sprintf("p%d", r.nextID)
	// Timestamps exist only on the stored copy, as with server timestamps.
	cp := *p
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.products = append([]*entity.Product{&cp}, r.products...)
	r.mu.Unlock()
	r.emit()
	return nil
}

func (r *fakeProductRepo) find(id string) (int, *entity.Product) {
	for i, p := range r.products {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	_, p := r.find(id)
	if p == nil {
		return nil, errors.NotFound("Product", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.snapshot(), nil
}

func (r *fakeProductRepo) snapshot() []*entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, len(r.products))
	for i, p := range r.products {
		cp := *p
		out[i] = &cp
	}
	return out
}

func (r *fakeProductRepo) Update(ctx context.Context, id string, patch entity.ProductPatch) error {
	r.mu.Lock()
	_, p := r.find(id)
	if p == nil {
		r.mu.Unlock()
		return errors.NotFound("Product", nil)
	}
	r.writes++
	p.Name, p.Price, p.Category, p.Image = patch.Name, patch.Price, patch.Category, patch.Image
	p.Description, p.Features, p.Stock = patch.Description, patch.Features, patch.Stock
	p.IsBestSeller, p.BestSellerOrder = patch.IsBestSeller, patch.BestSellerOrder
	p.UpdatedAt = time.Now()
	r.mu.Unlock()
	r.emit()
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	i, _ := r.find(id)
	if i >= 0 {
		r.products = append(r.products[:i], r.products[i+1:]...)
		r.writes++
	}
	r.mu.Unlock()
	r.emit()
	return nil
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context, category string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.products {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	r.mu.Lock()
	_, p := r.find(id)
	if p == nil {
		r.mu.Unlock()
		return 0, errors.NotFound("Product", nil)
	}
	if p.Stock-quantity < 0 {
		r.mu.Unlock()
		return 0, errors.InsufficientStock(p.Stock, quantity)
	}
	p.Stock -= quantity
	r.writes++
	stock := p.Stock
	r.mu.Unlock()
	r.emit()
	return stock, nil
}

func (r *fakeProductRepo) Watch(ctx context.Context, onChange func([]*entity.Product)) (repository.Subscription, error) {
	r.mu.Lock()
	id := len(r.watchers) + r.stopped
	r.watchers[id] = onChange
	r.mu.Unlock()

	onChange(r.snapshot())
	return func() {
		r.mu.Lock()
		if _, ok := r.watchers[id]; ok {
			delete(r.watchers, id)
			r.stopped++
		}
		r.mu.Unlock()
	}, nil
}

func (r *fakeProductRepo) emit() {
	r.mu.Lock()
	fns := make([]func([]*entity.Product), 0, len(r.watchers))
	for _, fn := range r.watchers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	list := r.snapshot()
	for _, fn := range fns {
		fn(list)
	}
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []*entity.Category
	nextID     int
	watchers   map[int]func([]*entity.Category)
	stopped    int
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{watchers: map[int]func([]*entity.Category){}}
	for _, n := range names {
		r.nextID++
		r.categories = append(r.categories, &entity.Category{ID: fmt.Sprintf("c%d", r.nextID), Name: n})
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.mu.Lock()
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	cp := *c
	r.categories = append(r.categories, &cp)
	r.mu.Unlock()
	r.emit()
	return nil
}

// List orders by name like the Firestore query does.
func (r *fakeCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, len(r.categories))
	copy(out, r.categories)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && strings.Compare(out[j-1].Name, out[j].Name) > 0; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	r.emit()
	return nil
}

func (r *fakeCategoryRepo) Watch(ctx context.Context, onChange func([]*entity.Category)) (repository.Subscription, error) {
	r.mu.Lock()
	id := len(r.watchers) + r.stopped
	r.watchers[id] = onChange
	r.mu.Unlock()

	list, _ := r.List(ctx)
	onChange(list)
	return func() {
		r.mu.Lock()
		if _, ok := r.watchers[id]; ok {
			delete(r.watchers, id)
			r.stopped++
		}
		r.mu.Unlock()
	}, nil
}

func (r *fakeCategoryRepo) emit() {
	r.mu.Lock()
	fns := make([]func([]*entity.Category), 0, len(r.watchers))
	for _, fn := range r.watchers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	list, _ := r.List(context.Background())
	for _, fn := range fns {
		fn(list)
	}
}

type fakeReviewRepo struct {
	reviews []*entity.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	review.ID = fmt.Sprintf("r%d", len(r.reviews)+1)
	review.CreatedAt = time.Now()
	r.reviews = append([]*entity.Review{review}, r.reviews...)
	return nil
}

func (r *fakeReviewRepo) ListLatest(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	total := int64(len(r.reviews))
	if offset >= len(r.reviews) {
		return []*entity.Review{}, total, nil
	}
	end := offset + limit
	if end > len(r.reviews) {
		end = len(r.reviews)
	}
	return r.reviews[offset:end], total, nil
}

type fakeImageHost struct {
	err     error
	uploads []string
}

func (h *fakeImageHost) Upload(ctx context.Context, image service.ImageUpload) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.uploads = append(h.uploads, image.Filename)
	return "https://img.example/" + image.Filename, nil
}

type fakeRates struct {
	result  entity.RateResult
	latest  entity.RateResult
	fetches int
}

func (f *fakeRates) Fetch(ctx context.Context) entity.RateResult {
	f.fetches++
	if f.result.OK {
		f.latest = f.result
	}
	return f.result
}

func (f *fakeRates) Latest() entity.RateResult {
	return f.latest
}

type fakeAuth struct {
	identity *entity.Identity
	session  *entity.AuthSession
	err      error
}

func (f *fakeAuth) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func (f *fakeAuth) SignInWithEmailPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeAuth) RefreshIdToken(ctx context.Context, refreshToken string) (*entity.AuthSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func product(id, name, category string, price float64, stock int) *entity.Product {
	return &entity.Product{ID: id, Name: name, Category: category, Price: price, Stock: stock}
}

func patchOf(p *entity.Product, bestSeller bool, order int) entity.ProductPatch {
	return entity.ProductPatch{
		Name:            p.Name,
		Price:           p.Price,
		Category:        p.Category,
		Image:           p.Image,
		Description:     p.Description,
		Features:        p.Features,
		Stock:           p.Stock,
		IsBestSeller:    bestSeller,
		BestSellerOrder: order,
	}
}
