package book

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/bookerr"
	"bookstore/internal/storage/mocks"
	"bookstore/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStorageRepo(nil))
	desc := "The first book in the Harry Potter series"

	b, err := svc.Register(ctx, NewBookInput{
		ISBN:            "978-0-7475-3269-9",
		Title:           "Harry Potter and the Philosopher's Stone",
		Author:          "J.K. Rowling",
		PublicationYear: 1997,
		Description:     &desc,
	})
	require.NoError(t, err)
	require.NotNil(t, b.Description)
	assert.Equal(t, desc, *b.Description)

	got, err := svc.GetByISBN(ctx, testutil.HarryPotterKey)
	require.NoError(t, err)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", got.Title)

	_, err = svc.Register(ctx, NewBookInput{ISBN: testutil.HarryPotterKey, Title: "x", Author: "y", PublicationYear: 2000})
	assert.ErrorIs(t, err, bookerr.ErrDuplicate)
}

func TestService_RegisterInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The backend must not be touched when validation fails.
	svc := NewService(NewStorageRepo(mocks.NewMockBackend(ctrl)))

	_, err := svc.Register(context.Background(), NewBookInput{ISBN: "123", PublicationYear: 1997})
	var isbnErr *bookerr.InvalidISBNError
	require.True(t, errors.As(err, &isbnErr))

	_, err = svc.Register(context.Background(), NewBookInput{ISBN: "978-0-7475-3269-9", PublicationYear: 3000})
	var yearErr *bookerr.InvalidPublicationYearError
	require.True(t, errors.As(err, &yearErr))
	assert.Equal(t, 3000, yearErr.Year)
}

func TestService_ExistsAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStorageRepo(nil))

	ok, err := svc.Exists(ctx, testutil.HarryPotterKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(ctx, NewBookInput{ISBN: testutil.HarryPotterKey, Title: "t", Author: "a", PublicationYear: 1997})
	require.NoError(t, err)

	ok, err = svc.Exists(ctx, "978-0-7475-3269-9")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Remove(ctx, testutil.HarryPotterKey))
	ok, err = svc.Exists(ctx, testutil.HarryPotterKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_ExistsBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("backend down")
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Load(gomock.Any(), testutil.HarryPotterKey).Return(nil, boom)

	ok, err := NewService(NewStorageRepo(backend)).Exists(context.Background(), testutil.HarryPotterKey)
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}
