package router

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/internal/domain/service"
	"undulcito/pkg/errors"
)

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
	seq   int
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}}
	for i, p := range products {
		p.CreatedAt = time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(ctx context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("new-%d", m.seq)
	cp := *p
	cp.CreatedAt = time.Now()
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) ListAll(ctx context.Context) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.items))
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memProducts) Update(ctx context.Context, id string, patch entity.ProductPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	p.Name, p.Price, p.Category, p.Image, p.Stock = patch.Name, patch.Price, patch.Category, patch.Image, patch.Stock
	return nil
}

func (m *memProducts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memProducts) CountByCategory(ctx context.Context, category string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.items {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (m *memProducts) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return 0, errors.NotFound("Product", nil)
	}
	if p.Stock < quantity {
		return 0, errors.InsufficientStock(p.Stock, quantity)
	}
	p.Stock -= quantity
	return p.Stock, nil
}

func (m *memProducts) Watch(ctx context.Context, onChange func([]*entity.Product)) (repository.Subscription, error) {
	list, _ := m.ListAll(ctx)
	onChange(list)
	return func() {}, nil
}

type memCategories struct {
	mu    sync.Mutex
	items []*entity.Category
}

func (m *memCategories) Create(ctx context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = fmt.Sprintf("cat-%d", len(m.items)+1)
	cp := *c
	m.items = append(m.items, &cp)
	return nil
}

func (m *memCategories) List(ctx context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Category, len(m.items))
	copy(out, m.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memCategories) Watch(ctx context.Context, onChange func([]*entity.Category)) (repository.Subscription, error) {
	list, _ := m.List(ctx)
	onChange(list)
	return func() {}, nil
}

type memReviews struct {
	items []*entity.Review
}

func (m *memReviews) Create(ctx context.Context, r *entity.Review) error {
	r.ID = fmt.Sprintf("rev-%d", len(m.items)+1)
	m.items = append([]*entity.Review{r}, m.items...)
	return nil
}

func (m *memReviews) ListLatest(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	end := offset + limit
	if end > len(m.items) {
		end = len(m.items)
	}
	if offset > end {
		offset = end
	}
	return m.items[offset:end], int64(len(m.items)), nil
}

type stubHost struct{}

func (stubHost) Upload(ctx context.Context, image service.ImageUpload) (string, error) {
	return "https://img.example/" + image.Filename, nil
}

type stubRates struct{ result entity.RateResult }

func (s stubRates) Fetch(ctx context.Context) entity.RateResult { return s.result }
func (s stubRates) Latest() entity.RateResult                   { return s.result }

type stubAuth struct{}

func (stubAuth) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	switch token {
	case "owner-token":
		return &entity.Identity{UID: "owner", Email: "yola@dulcito.com"}, nil
	case "helper-token":
		return &entity.Identity{UID: "helper", Email: "helper@dulcito.com"}, nil
	}
	return nil, fmt.Errorf("token rejected")
}

func (stubAuth) SignInWithEmailPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	if password != "secret" {
		return nil, fmt.Errorf("INVALID_PASSWORD")
	}
	return &entity.AuthSession{IDToken: "owner-token", RefreshToken: "rt", ExpiresIn: 3600, UID: "owner", Email: email}, nil
}

func (stubAuth) RefreshIdToken(ctx context.Context, refreshToken string) (*entity.AuthSession, error) {
	return nil, fmt.Errorf("not supported")
}
