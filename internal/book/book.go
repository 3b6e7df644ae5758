package book

import (
	"time"

	"bookstore/internal/bookerr"
	"bookstore/internal/isbn"
)

const futureYearReason = "publication year cannot be in the future"

// Book represents a catalog entry. New validates it; nothing mutates it
// afterwards.
type Book struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Description     *string   `json:"description,omitempty"`
	AddedAt         time.Time `json:"added_at"`
}

// Option customizes a Book during New.
type Option func(*Book)

// WithDescription sets the optional description.
func WithDescription(description string) Option {
	return func(b *Book) {
		b.Description = &description
	}
}

// WithAddedAt overrides the construction timestamp, e.g. when a stored book
// is loaded back.
func WithAddedAt(t time.Time) Option {
	return func(b *Book) {
		b.AddedAt = t
	}
}

// New validates the ISBN shape and the publication year and returns the book.
// It fails with *bookerr.InvalidISBNError or
// *bookerr.InvalidPublicationYearError.
func New(rawISBN, title, author string, publicationYear int, opts ...Option) (Book, error) {
	return newAt(time.Now(), rawISBN, title, author, publicationYear, opts...)
}

func newAt(now time.Time, rawISBN, title, author string, publicationYear int, opts ...Option) (Book, error) {
	if err := isbn.Check(rawISBN); err != nil {
		return Book{}, err
	}
	if publicationYear > now.Year() {
		return Book{}, &bookerr.InvalidPublicationYearError{Year: publicationYear, Reason: futureYearReason}
	}

	// AddedAt is taken per call; books never share a default timestamp.
	b := Book{
		ISBN:            rawISBN,
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		AddedAt:         now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b, nil
}

// Age returns the number of years since publication, using the current clock.
func (b Book) Age() int {
	return b.AgeAt(time.Now())
}

// AgeAt returns the number of years between publication and t's year.
func (b Book) AgeAt(t time.Time) int {
	return t.Year() - b.PublicationYear
}

// Key is the normalized ISBN used to store and look up the book.
func (b Book) Key() string {
	return isbn.Normalize(b.ISBN)
}
