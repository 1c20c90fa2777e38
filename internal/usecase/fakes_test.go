package usecase

import (
	"catalog_service/internal/domain"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeProductRepo mimics the store-level contract the mongo repository
// provides: upserts set client-owned fields only, counters survive updates
// and are initialized to zero on insert, increments are atomic under the
// repo mutex.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product

	applyCalls int
	incCalls   int
	failWith   error

	// partialErr simulates an unordered bulk where some operations applied
	// before others failed; partialResult carries the applied counts.
	partialErr    error
	partialResult *domain.BatchResult
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]domain.Product{}}
}

func (f *fakeProductRepo) seed(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProductRepo) ApplyBatch(_ context.Context, upserts []domain.Product, deleteIDs []string) (*domain.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.partialErr != nil {
		return f.partialResult, f.partialErr
	}
	result := &domain.BatchResult{}
	for _, p := range upserts {
		existing, ok := f.products[p.ID]
		if ok {
			existing.Name = p.Name
			existing.Price = p.Price
			existing.Offer = p.Offer
			existing.Image = p.Image
			existing.Description = p.Description
			f.products[p.ID] = existing
			result.Matched++
			continue
		}
		p.FavoriteCount = 0
		p.StarCount = 0
		f.products[p.ID] = p
		result.Upserted++
	}
	for _, id := range deleteIDs {
		if _, ok := f.products[id]; ok {
			delete(f.products, id)
			result.Deleted++
		}
	}
	return result, nil
}

func (f *fakeProductRepo) UpdateProductFields(_ context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	for key, value := range updates {
		switch key {
		case "name":
			p.Name = value.(string)
		case "price":
			p.Price = value.(float64)
		case "offer":
			p.Offer = value.(float64)
		case "image":
			p.Image = value.(string)
		case "description":
			p.Description = value.(string)
		}
	}
	f.products[id] = p
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) IncrementCounter(_ context.Context, id string, kind domain.RatingKind, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incCalls++
	if f.failWith != nil {
		return 0, f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return 0, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	switch kind {
	case domain.RatingFavorite:
		p.FavoriteCount++
	case domain.RatingStar:
		p.StarCount++
	}
	p.LastInteraction = at
	f.products[id] = p
	count := p.FavoriteCount
	if kind == domain.RatingStar {
		count = p.StarCount
	}
	return count, nil
}

type fakeAdRepo struct {
	mu       sync.Mutex
	ad       *domain.Advertisement
	failWith error
}

func (f *fakeAdRepo) GetAdvertisement(_ context.Context) (*domain.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.ad == nil {
		return nil, fmt.Errorf("advertisement: %w", domain.ErrNotFound)
	}
	ad := *f.ad
	return &ad, nil
}

func (f *fakeAdRepo) ReplaceAdvertisement(_ context.Context, ad domain.Advertisement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.ad = &ad
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
