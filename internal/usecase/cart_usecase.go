package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"undulcito/internal/domain/cart"
	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/internal/domain/service"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
)

// CartView is everything the cart drawer renders.
type CartView struct {
	Items   []cart.Item
	Count   int
	Total   decimal.Decimal
	Open    bool
	Rate    entity.RateResult
	TotalBs decimal.Decimal
}

// Converted reports whether TotalBs holds a real conversion.
func (v CartView) Converted() bool {
	return v.Rate.OK
}

type AddToCartResult struct {
	Added bool
	// LimitReached is set when the product is already at its stock ceiling
	// or had no stock when first added.
	LimitReached bool
	View         CartView
}

type cartSession struct {
	store    *cart.Store
	lastSeen time.Time
}

// CartUseCase keeps one cart per visitor session in memory. Carts are never
// persisted and vanish after CartIdleTTL without activity.
type CartUseCase struct {
	productRepo repository.ProductRepository
	rates       service.RateSource
	composer    *CheckoutComposer
	idleTTL     time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*cartSession
}

func NewCartUseCase(
	productRepo repository.ProductRepository,
	rates service.RateSource,
	composer *CheckoutComposer,
	idleTTL time.Duration,
) *CartUseCase {
	return &CartUseCase{
		productRepo: productRepo,
		rates:       rates,
		composer:    composer,
		idleTTL:     idleTTL,
		now:         time.Now,
		sessions:    make(map[string]*cartSession),
	}
}

// Resolve returns sessionID when it names a live cart, otherwise the ID of a
// new empty one.
func (uc *CartUseCase) Resolve(sessionID string) string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions[sessionID]; ok && sessionID != "" {
		s.lastSeen = uc.now()
		return sessionID
	}

	id := uuid.New().String()
	uc.sessions[id] = &cartSession{store: cart.NewStore(), lastSeen: uc.now()}
	return id
}

func (uc *CartUseCase) store(sessionID string) (*cart.Store, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		return nil, errors.NotFound("Cart", nil)
	}
	s.lastSeen = uc.now()
	return s.store, nil
}

func (uc *CartUseCase) View(sessionID string) (CartView, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return CartView{}, err
	}
	return uc.view(store), nil
}

func (uc *CartUseCase) view(store *cart.Store) CartView {
	total := store.Total()
	rate := uc.rates.Latest()
	converted, _ := ConvertToBolivars(total, rate)

	return CartView{
		Items:   store.Items(),
		Count:   store.Count(),
		Total:   total,
		Open:    store.IsOpen(),
		Rate:    rate,
		TotalBs: converted,
	}
}

// Add puts one unit of productID in the cart. A product already in the cart
// keeps the stock ceiling recorded when it was first added, so only new
// products are looked up.
func (uc *CartUseCase) Add(ctx context.Context, sessionID, productID string) (*AddToCartResult, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return nil, err
	}

	var added bool
	if _, inCart := store.Item(productID); inCart {
		if store.CanAdd(productID, 0) {
			added = store.Add(cart.Product{ID: productID}, 0)
		}
	} else {
		product, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		added = store.Add(cart.Product{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
			Image: product.Image,
		}, product.Stock)
	}

	return &AddToCartResult{
		Added:        added,
		LimitReached: !added,
		View:         uc.view(store),
	}, nil
}

func (uc *CartUseCase) Remove(sessionID, productID string) (CartView, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return CartView{}, err
	}
	store.Remove(productID)
	return uc.view(store), nil
}

func (uc *CartUseCase) Clear(sessionID string) (CartView, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return CartView{}, err
	}
	store.Clear()
	return uc.view(store), nil
}

// Open shows the cart and refreshes the exchange rate. The rate lookup is
// best effort; without it the view carries no converted total.
func (uc *CartUseCase) Open(ctx context.Context, sessionID string) (CartView, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return CartView{}, err
	}
	store.Open()

	if result := uc.rates.Fetch(ctx); !result.OK {
		logger.Debug("Cart opened without an exchange rate")
	}
	return uc.view(store), nil
}

func (uc *CartUseCase) Close(sessionID string) (CartView, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return CartView{}, err
	}
	store.Close()
	return uc.view(store), nil
}

// Checkout composes the WhatsApp order. The cart is left as it is.
func (uc *CartUseCase) Checkout(sessionID string) (*CheckoutResult, error) {
	store, err := uc.store(sessionID)
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, errors.BadRequest("Cart is empty", nil)
	}

	result := uc.composer.Compose(store.Items(), store.Total(), uc.rates.Latest())
	return &result, nil
}

// Evict drops carts idle for longer than the configured TTL and returns how
// many were dropped.
func (uc *CartUseCase) Evict() int {
	cutoff := uc.now().Add(-uc.idleTTL)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	dropped := 0
	for id, s := range uc.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(uc.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (uc *CartUseCase) StartEviction(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := uc.Evict(); n > 0 {
					logger.Info("Evicted %d idle carts", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (uc *CartUseCase) Sessions() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}
