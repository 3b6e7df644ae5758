package rating

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookstore/internal/isbn"
	"bookstore/internal/storage"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StorageRepo keeps each book's ratings as one JSON list in a
// storage.Backend, keyed by normalized ISBN.
type StorageRepo struct {
	backend storage.Backend
	mu      sync.Mutex
}

func NewStorageRepo(backend storage.Backend) *StorageRepo {
	if backend == nil {
		backend = storage.NewMemory()
	}
	return &StorageRepo{backend: backend}
}

// Add appends r to the ratings of its book.
func (repo *StorageRepo) Add(ctx context.Context, r Rating) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := isbn.Normalize(r.ISBN)
	ratings, err := repo.load(ctx, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(append(ratings, r))
	if err != nil {
		return fmt.Errorf("encode ratings %s: %w", key, err)
	}
	if err := repo.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save ratings %s: %w", key, err)
	}
	return nil
}

// List returns the ratings of a book in insertion order. A book without
// ratings yields an empty slice.
func (repo *StorageRepo) List(ctx context.Context, id string) ([]Rating, error) {
	return repo.load(ctx, isbn.Normalize(id))
}

func (repo *StorageRepo) load(ctx context.Context, key string) ([]Rating, error) {
	data, err := repo.backend.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Rating{}, nil
		}
		return nil, fmt.Errorf("load ratings %s: %w", key, err)
	}
	var ratings []Rating
	if err := json.Unmarshal(data, &ratings); err != nil {
		return nil, fmt.Errorf("decode ratings %s: %w", key, err)
	}
	return ratings, nil
}
