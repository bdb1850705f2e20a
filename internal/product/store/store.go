// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/productcatalog/internal/product/model"
)

// ProductStore loads and persists the whole product collection at once.
// It abstracts the underlying medium, allowing for different implementations (e.g., JSON file, in-memory).
type ProductStore interface {
	// Load returns the full collection in stored order.
	// Returns an error wrapping ErrStorage if the collection cannot be read or decoded.
	Load(ctx context.Context) ([]model.Product, error)

	// Persist replaces the stored collection with products.
	// Returns an error wrapping ErrStorage if the collection cannot be written.
	Persist(ctx context.Context, products []model.Product) error
}
