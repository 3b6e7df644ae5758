package rating

import (
	"context"
	"fmt"

	"bookstore/internal/bookerr"
)

// Service records ratings and summarizes them per book.
type Service struct {
	repo  Repository
	books BookFinder
}

// NewService returns a rating service. When books is non-nil, ratings for
// ISBNs missing from the catalog are rejected with *bookerr.NotFoundError.
func NewService(repo Repository, books BookFinder) *Service {
	return &Service{repo: repo, books: books}
}

// Rate validates and records one rating.
func (s *Service) Rate(ctx context.Context, isbn string, id, value int) (Rating, error) {
	r, err := New(isbn, id, value)
	if err != nil {
		return Rating{}, err
	}
	if s.books != nil {
		ok, err := s.books.Exists(ctx, isbn)
		if err != nil {
			return Rating{}, fmt.Errorf("look up book %s: %w", isbn, err)
		}
		if !ok {
			return Rating{}, &bookerr.NotFoundError{ISBN: isbn}
		}
	}
	if err := s.repo.Add(ctx, r); err != nil {
		return Rating{}, err
	}
	return r, nil
}

// Scores returns the rating values recorded for a book.
func (s *Service) Scores(ctx context.Context, isbn string) ([]int, error) {
	ratings, err := s.repo.List(ctx, isbn)
	if err != nil {
		return nil, err
	}
	scores := make([]int, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Value)
	}
	return scores, nil
}

// Stats returns the mean and count of a book's ratings; both are zero when
// the book has none.
func (s *Service) Stats(ctx context.Context, isbn string) (Stats, error) {
	scores, err := s.Scores(ctx, isbn)
	if err != nil {
		return Stats{}, err
	}
	if len(scores) == 0 {
		return Stats{}, nil
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return Stats{Average: float64(sum) / float64(len(scores)), Count: len(scores)}, nil
}

// GetBookRating returns the average and count of a book's ratings.
func (s *Service) GetBookRating(ctx context.Context, isbn string) (float64, int, error) {
	st, err := s.Stats(ctx, isbn)
	if err != nil {
		return 0, 0, err
	}
	return st.Average, st.Count, nil
}
