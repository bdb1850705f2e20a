// Package repository translates product queries into load/persist cycles over a ProductStore.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/store"
)

// Repository exposes find/filter/create/update/delete over the store's collection.
// Every call reloads the collection; every mutation persists it in full.
type Repository struct {
	store store.ProductStore
}

// New creates a Repository on top of the given store.
func New(s store.ProductStore) *Repository {
	return &Repository{store: s}
}

// FindAll returns the full collection.
func (r *Repository) FindAll(ctx context.Context) ([]model.Product, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// FindByName returns the products whose name contains query, ignoring case.
func (r *Repository) FindByName(ctx context.Context, query string) ([]model.Product, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	needle := strings.ToLower(query)
	matches := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// FindByID returns the product with the given id and whether it exists.
func (r *Repository) FindByID(ctx context.Context, id int64) (model.Product, bool, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return model.Product{}, false, fmt.Errorf("failed to load products: %w", err)
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return model.Product{}, false, nil
	}
	return products[idx], true, nil
}

// Create assigns the next id, appends the product and persists the collection.
func (r *Repository) Create(ctx context.Context, in model.Input) (model.Product, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to load products: %w", err)
	}
	created := in.NewProduct(nextID(products))
	products = append(products, created)
	if err := r.store.Persist(ctx, products); err != nil {
		return model.Product{}, fmt.Errorf("failed to persist new product %d: %w", created.ID, err)
	}
	return created, nil
}

// Update merges the supplied input fields over the stored record and persists the collection.
// The boolean is false when no record has the given id; nothing is written in that case.
func (r *Repository) Update(ctx context.Context, id int64, in model.Input) (model.Product, bool, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return model.Product{}, false, fmt.Errorf("failed to load products: %w", err)
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return model.Product{}, false, nil
	}
	products[idx] = products[idx].Merge(in)
	if err := r.store.Persist(ctx, products); err != nil {
		return model.Product{}, false, fmt.Errorf("failed to persist product %d: %w", id, err)
	}
	return products[idx], true, nil
}

// Delete removes the record with the given id. It reports false if there was none.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	products, err := r.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load products: %w", err)
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return false, nil
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := r.store.Persist(ctx, products); err != nil {
		return false, fmt.Errorf("failed to persist removal of product %d: %w", id, err)
	}
	return true, nil
}

// nextID is one more than the highest id in use, or 1 for an empty collection.
func nextID(products []model.Product) int64 {
	var maxID int64
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func indexOf(products []model.Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
