package isbn

import (
	"errors"
	"testing"

	"bookstore/internal/bookerr"
	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "9780747532699", Normalize("978-0-7475-3269-9"))
	assert.Equal(t, "9780747532699", Normalize("978 0 7475 3269 9"))
	assert.Equal(t, "9780747532699", Normalize(" 978--0747532699 "))
	assert.Equal(t, "", Normalize("- -"))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "hyphenated", input: "978-0-7475-3269-9"},
		{name: "bare", input: "9780747532699"},
		{name: "spaces", input: "978 0 7475 3269 9"},
		{name: "bad checksum is accepted", input: "9780747532690"},
		{name: "too short", input: "123", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "fourteen digits", input: "97807475326990", wantErr: true},
		{name: "isbn10 with X", input: "0-7475-3269-X", wantErr: true},
		{name: "letter inside", input: "978074753269A", wantErr: true},
		{name: "dot separator", input: "978.0.7475.3269.9", wantErr: true},
		{name: "tab separator", input: "978\t0747532699", wantErr: true},
		{name: "non-ascii digits", input: "٩٧٨٠٧٤٧٥٣٢٦٩٩", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var isbnErr *bookerr.InvalidISBNError
			require.True(t, errors.As(err, &isbnErr))
			assert.Equal(t, tt.input, isbnErr.ISBN)
			assert.Equal(t, Reason, isbnErr.Reason)
		})
	}
}

func TestCheck_ThirteenDigitsWithNoiseAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testutil.ValidISBN().Draw(t, "isbn")
		if err := Check(s); err != nil {
			t.Fatalf("Check(%q) = %v, want nil", s, err)
		}
	})
}

func TestCheck_OtherDigitCountsRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Filter(func(n int) bool { return n != 13 }).Draw(t, "n")
		s := testutil.ISBNDigits(n).Draw(t, "isbn")
		if err := Check(s); !errors.Is(err, bookerr.ErrValidation) {
			t.Fatalf("Check(%q) = %v, want validation error", s, err)
		}
	})
}

func TestCheck_NonDigitRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[0-9]{0,12}[a-zA-Z.+_/][0-9]{0,12}`).Draw(t, "isbn")
		if err := Check(s); err == nil {
			t.Fatalf("Check(%q) = nil, want error", s)
		}
	})
}
