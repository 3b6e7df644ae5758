package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	Add(ctx context.Context, b Book) error
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Delete(ctx context.Context, isbn string) error
}
