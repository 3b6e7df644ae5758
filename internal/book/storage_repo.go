package book

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookstore/internal/bookerr"
	"bookstore/internal/isbn"
	"bookstore/internal/storage"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type document struct {
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationYear int     `json:"publication_year"`
	Description     *string `json:"description"`
	AddedAt         string  `json:"added_at"`
}

// StorageRepo keeps books as JSON documents in a storage.Backend, keyed by
// normalized ISBN.
type StorageRepo struct {
	backend storage.Backend
	mu      sync.Mutex
}

// NewStorageRepo returns a repository over backend. A nil backend selects an
// in-memory one.
func NewStorageRepo(backend storage.Backend) *StorageRepo {
	if backend == nil {
		backend = storage.NewMemory()
	}
	return &StorageRepo{backend: backend}
}

// Add stores b. It fails with *bookerr.DuplicateBookError when a book with
// the same normalized ISBN exists.
func (r *StorageRepo) Add(ctx context.Context, b Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := b.Key()
	_, err := r.backend.Load(ctx, key)
	switch {
	case err == nil:
		return &bookerr.DuplicateBookError{ISBN: b.ISBN}
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("load book %s: %w", key, err)
	}

	data, err := json.Marshal(toDocument(b))
	if err != nil {
		return fmt.Errorf("encode book %s: %w", key, err)
	}
	if err := r.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save book %s: %w", key, err)
	}
	return nil
}

// GetByISBN returns the book stored under the normalized form of id. It
// fails with *bookerr.NotFoundError when nothing is stored.
func (r *StorageRepo) GetByISBN(ctx context.Context, id string) (Book, error) {
	key := isbn.Normalize(id)
	data, err := r.backend.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Book{}, &bookerr.NotFoundError{ISBN: id}
		}
		return Book{}, fmt.Errorf("load book %s: %w", key, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Book{}, fmt.Errorf("decode book %s: %w", key, err)
	}
	return fromDocument(doc)
}

// Delete removes the book. Deleting an unknown ISBN is not an error.
func (r *StorageRepo) Delete(ctx context.Context, id string) error {
	key := isbn.Normalize(id)
	if err := r.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete book %s: %w", key, err)
	}
	return nil
}

func toDocument(b Book) document {
	return document{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		AddedAt:         b.AddedAt.Format(time.RFC3339Nano),
	}
}

// fromDocument rebuilds the book through New so stored data is validated
// again on the way out.
func fromDocument(doc document) (Book, error) {
	addedAt, err := time.Parse(time.RFC3339Nano, doc.AddedAt)
	if err != nil {
		return Book{}, fmt.Errorf("parse added_at %q: %w", doc.AddedAt, err)
	}
	opts := []Option{WithAddedAt(addedAt)}
	if doc.Description != nil {
		opts = append(opts, WithDescription(*doc.Description))
	}
	return New(doc.ISBN, doc.Title, doc.Author, doc.PublicationYear, opts...)
}
