package book

import (
	"context"
	"errors"

	"bookstore/internal/bookerr"
)

// NewBookInput carries the caller-supplied fields of a book to register.
type NewBookInput struct {
	ISBN            string
	Title           string
	Author          string
	PublicationYear int
	Description     *string
}

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the input as a Book and stores it.
func (s *Service) Register(ctx context.Context, in NewBookInput) (Book, error) {
	var opts []Option
	if in.Description != nil {
		opts = append(opts, WithDescription(*in.Description))
	}
	b, err := New(in.ISBN, in.Title, in.Author, in.PublicationYear, opts...)
	if err != nil {
		return Book{}, err
	}
	if err := s.repo.Add(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Remove deletes a book by its ISBN.
func (s *Service) Remove(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}

// Exists reports whether a book is stored under isbn.
func (s *Service) Exists(ctx context.Context, isbn string) (bool, error) {
	_, err := s.repo.GetByISBN(ctx, isbn)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bookerr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
