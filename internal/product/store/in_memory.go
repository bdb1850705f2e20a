package store

import (
	"context"
	"sync"

	"github.com/abgdnv/productcatalog/internal/product/model"
)

// inMemory implements ProductStore using a slice held in memory.
type inMemory struct {
	mu       sync.RWMutex
	products []model.Product
}

// NewInMemoryStore creates a new instance of ProductStore seeded with the given products.
func NewInMemoryStore(seed ...model.Product) ProductStore {
	return &inMemory{products: cloneAll(seed)}
}

// Load returns a copy of the held collection.
func (s *inMemory) Load(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.products), nil
}

// Persist replaces the held collection with a copy of products.
func (s *inMemory) Persist(ctx context.Context, products []model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = cloneAll(products)
	return nil
}

func cloneAll(products []model.Product) []model.Product {
	list := make([]model.Product, 0, len(products))
	for _, p := range products {
		list = append(list, p.Clone())
	}
	return list
}
