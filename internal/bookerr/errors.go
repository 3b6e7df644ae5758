// Package bookerr holds the failure signals shared by the catalog packages.
package bookerr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every construction-time validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a book cannot be found.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicate is returned when a book with the same ISBN already exists.
	ErrDuplicate = errors.New("book already exists")
)

// InvalidISBNError reports an ISBN that fails the shape check.
// ISBN holds the value as the caller supplied it, before normalization.
type InvalidISBNError struct {
	ISBN   string
	Reason string
}

func (e *InvalidISBNError) Error() string {
	return fmt.Sprintf("invalid ISBN %q: %s", e.ISBN, e.Reason)
}

func (e *InvalidISBNError) Is(target error) bool { return target == ErrValidation }

func (e *InvalidISBNError) reason() string { return e.Reason }

// InvalidPublicationYearError reports a publication year in the future.
type InvalidPublicationYearError struct {
	Year   int
	Reason string
}

func (e *InvalidPublicationYearError) Error() string {
	return fmt.Sprintf("invalid publication year %d: %s", e.Year, e.Reason)
}

func (e *InvalidPublicationYearError) Is(target error) bool { return target == ErrValidation }

func (e *InvalidPublicationYearError) reason() string { return e.Reason }

// InvalidRatingError reports a rating outside the accepted range.
type InvalidRatingError struct {
	Rating int
	Reason string
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("invalid rating %d: %s", e.Rating, e.Reason)
}

func (e *InvalidRatingError) Is(target error) bool { return target == ErrValidation }

func (e *InvalidRatingError) reason() string { return e.Reason }

// NotFoundError is returned when no book is stored under ISBN.
type NotFoundError struct {
	ISBN string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("book with ISBN %s not found", e.ISBN)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateBookError is returned when adding a book whose ISBN is already stored.
type DuplicateBookError struct {
	ISBN string
}

func (e *DuplicateBookError) Error() string {
	return fmt.Sprintf("book with ISBN %s already exists", e.ISBN)
}

func (e *DuplicateBookError) Is(target error) bool { return target == ErrDuplicate }

type reasoner interface {
	reason() string
}

// Reason returns the human-readable reason carried by the first validation
// error in err's chain.
func Reason(err error) (string, bool) {
	var r reasoner
	if errors.As(err, &r) {
		return r.reason(), true
	}
	return "", false
}
