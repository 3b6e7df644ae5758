// Package isbn normalizes and shape-checks ISBN-13 identifiers.
//
// Only the shape is checked: thirteen decimal digits once hyphens and spaces
// are removed. The ISO 2108 check digit is not verified.
package isbn

import (
	"regexp"
	"strings"

	"bookstore/internal/bookerr"

	"github.com/go-playground/validator/v10"
)

// Reason is carried by InvalidISBNError when the shape check fails.
const Reason = "ISBN must be 13 digits (excluding hyphens and spaces)"

var (
	validate   *validator.Validate
	isbn13Expr = regexp.MustCompile(`^\d{13}$`)
	stripper   = strings.NewReplacer("-", "", " ", "")
)

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("isbn13", validateISBN13); err != nil {
		panic(err)
	}
}

func validateISBN13(fl validator.FieldLevel) bool {
	return isbn13Expr.MatchString(Normalize(fl.Field().String()))
}

// Normalize strips every hyphen and space from s.
func Normalize(s string) string {
	return stripper.Replace(s)
}

// Check returns an *bookerr.InvalidISBNError carrying s unchanged when s is
// not thirteen digits after normalization.
func Check(s string) error {
	if err := validate.Var(s, "isbn13"); err != nil {
		return &bookerr.InvalidISBNError{ISBN: s, Reason: Reason}
	}
	return nil
}
