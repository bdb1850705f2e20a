package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
	indent   = "  "
)

// fileStore implements ProductStore on top of a single JSON document.
// Every call reads or writes the whole file; there is no cache and no lock.
type fileStore struct {
	path string
}

// NewFileStore creates a ProductStore backed by the JSON file at path.
func NewFileStore(path string) ProductStore {
	return &fileStore{path: path}
}

// Load reads and decodes the whole file.
func (s *fileStore) Load(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", perrors.ErrStorage, s.path, err)
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", perrors.ErrStorage, s.path, err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Persist encodes products as an indented JSON array and overwrites the file.
func (s *fileStore) Persist(ctx context.Context, products []model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []model.Product{}
	}
	data, err := json.MarshalIndent(products, "", indent)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", perrors.ErrStorage, s.path, err)
	}
	if err := os.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", perrors.ErrStorage, s.path, err)
	}
	return nil
}

// EnsureFile creates an empty collection at path when no file exists there yet.
// An existing file is left untouched, even if it is not valid JSON.
func EnsureFile(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("%w: stat %s: %w", perrors.ErrStorage, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, fmt.Errorf("%w: create directory for %s: %w", perrors.ErrStorage, path, err)
	}
	if err := os.WriteFile(path, []byte("[]"), filePerm); err != nil {
		return false, fmt.Errorf("%w: create %s: %w", perrors.ErrStorage, path, err)
	}
	return true, nil
}
