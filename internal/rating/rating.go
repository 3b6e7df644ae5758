package rating

import (
	"context"
	"fmt"

	"bookstore/internal/bookerr"

	"github.com/go-playground/validator/v10"
)

const (
	MinValue = 0
	MaxValue = 5
)

var (
	validate    = validator.New()
	rangeTag    = fmt.Sprintf("min=%d,max=%d", MinValue, MaxValue)
	rangeReason = fmt.Sprintf("rating must be between %d and %d", MinValue, MaxValue)
)

// Rating is one rating event for the book identified by ISBN. The ISBN is
// not checked against the catalog here.
type Rating struct {
	ISBN  string `json:"isbn"`
	ID    int    `json:"id"`
	Value int    `json:"rating"`
}

// New returns a rating, failing with *bookerr.InvalidRatingError when value
// is outside [MinValue, MaxValue].
func New(isbn string, id, value int) (Rating, error) {
	if err := validate.Var(value, rangeTag); err != nil {
		return Rating{}, &bookerr.InvalidRatingError{Rating: value, Reason: rangeReason}
	}
	return Rating{ISBN: isbn, ID: id, Value: value}, nil
}

// Stats summarizes the ratings of one book.
type Stats struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"ratings_count"`
}

// Repository stores ratings per book.
type Repository interface {
	Add(ctx context.Context, r Rating) error
	List(ctx context.Context, isbn string) ([]Rating, error)
}

// BookFinder reports whether a book is in the catalog.
type BookFinder interface {
	Exists(ctx context.Context, isbn string) (bool, error)
}
