// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// ListAll returns every product when query is blank, otherwise the products whose
	// name contains query (case-insensitive).
	ListAll(ctx context.Context, query string) ([]model.Product, error)

	// Get retrieves a single product by its id.
	// Returns ErrProductNotFound if no product exists with the given id.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Create adds a new product and returns it with its assigned id.
	Create(ctx context.Context, in model.Input) (*model.Product, error)

	// Update merges the supplied fields over an existing product.
	// Returns ErrProductNotFound if no product exists with the given id.
	Update(ctx context.Context, id int64, in model.Input) (*model.Product, error)

	// Delete removes a product by its id.
	// Returns ErrProductNotFound if no product exists with the given id.
	Delete(ctx context.Context, id int64) error

	// Ready reports whether the backing store can be read.
	Ready(ctx context.Context) error
}

// ProductRepository is the data access the service relies on.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByName(ctx context.Context, query string) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, bool, error)
	Create(ctx context.Context, in model.Input) (model.Product, error)
	Update(ctx context.Context, id int64, in model.Input) (model.Product, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository ProductRepository
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo ProductRepository) *Service {
	return &Service{
		repository: repo,
	}
}

// ListAll delegates to FindAll for a blank query and to FindByName otherwise.
// The query is passed through unmodified.
func (s *Service) ListAll(ctx context.Context, query string) ([]model.Product, error) {
	if strings.TrimSpace(query) == "" {
		products, err := s.repository.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		return products, nil
	}
	products, err := s.repository.FindByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products matching %q: %w", query, err)
	}
	return products, nil
}

// Get retrieves a product by its id.
func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, ok, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, perrors.ErrProductNotFound)
	}
	return &product, nil
}

// Create stores a new product.
func (s *Service) Create(ctx context.Context, in model.Input) (*model.Product, error) {
	product, err := s.repository.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update merges the input into the product with the given id.
func (s *Service) Update(ctx context.Context, id int64, in model.Input) (*model.Product, error) {
	product, ok, err := s.repository.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, perrors.ErrProductNotFound)
	}
	return &product, nil
}

// Delete removes the product with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("product with ID %d: %w", id, perrors.ErrProductNotFound)
	}
	return nil
}

// Ready performs a full read of the collection.
func (s *Service) Ready(ctx context.Context) error {
	if _, err := s.repository.FindAll(ctx); err != nil {
		return fmt.Errorf("product store not readable: %w", err)
	}
	return nil
}
