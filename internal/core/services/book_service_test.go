package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatorCanOnlyCreate(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	creator := f.identity(t, f.register(t, "ana", "a@x.com", domain.Permissions{CanCreateBooks: true}))

	book, err := f.books.CreateBook(ctx, creator, &CreateBookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.True(t, book.Available)
	assert.True(t, book.Active)

	_, err = f.books.UpdateBook(ctx, creator, book.ID, &UpdateBookInput{Title: strPtr("Dune Messiah")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.books.DeleteBook(ctx, creator, book.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateBookValidation(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	plain := f.identity(t, f.register(t, "ana", "a@x.com", domain.Permissions{}))

	// validation runs before the permission check
	_, err := f.books.CreateBook(ctx, plain, &CreateBookInput{Title: "Dune"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.books.CreateBook(ctx, plain, &CreateBookInput{Title: "Dune", Author: "Frank Herbert"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateBookExplicitFlags(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	creator := f.identity(t, f.register(t, "ana", "a@x.com", domain.Permissions{CanCreateBooks: true}))
	published := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)

	book, err := f.books.CreateBook(ctx, creator, &CreateBookInput{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Genre:       "sci-fi",
		PublishedAt: &published,
		Available:   boolPtr(false),
	})
	require.NoError(t, err)

	got, err := f.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.True(t, got.Active)
	assert.Equal(t, "sci-fi", got.Genre)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, published.Equal(*got.PublishedAt))
}

func TestSoftDeleteBook(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	admin := f.identity(t, f.register(t, "admin", "admin@x.com", domain.AllPermissions()))

	book, err := f.books.CreateBook(ctx, admin, &CreateBookInput{Title: "Dune", Author: "Frank Herbert", Available: boolPtr(false)})
	require.NoError(t, err)

	deleted, err := f.books.DeleteBook(ctx, admin, book.ID)
	require.NoError(t, err)
	assert.False(t, deleted.Active)
	assert.False(t, deleted.Available)

	got, err := f.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.False(t, got.Available)

	_, err = f.books.DeleteBook(ctx, admin, "missing")
	assert.Equal(t, domain.ErrNotFound, domain.Kind(err))
}

func TestSoftDeleteBookKeepsAvailability(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	admin := f.identity(t, f.register(t, "admin", "admin@x.com", domain.AllPermissions()))

	book, err := f.books.CreateBook(ctx, admin, &CreateBookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	deleted, err := f.books.DeleteBook(ctx, admin, book.ID)
	require.NoError(t, err)
	assert.False(t, deleted.Active)
	assert.True(t, deleted.Available)
}

func TestUpdateBookPartial(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	admin := f.identity(t, f.register(t, "admin", "admin@x.com", domain.AllPermissions()))

	book, err := f.books.CreateBook(ctx, admin, &CreateBookInput{Title: "Dune", Author: "Frank Herbert", Publisher: "Chilton"})
	require.NoError(t, err)

	got, err := f.books.UpdateBook(ctx, admin, book.ID, &UpdateBookInput{Genre: strPtr("sci-fi"), Available: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, "Chilton", got.Publisher)
	assert.Equal(t, "sci-fi", got.Genre)
	assert.False(t, got.Available)

	_, err = f.books.UpdateBook(ctx, admin, book.ID, &UpdateBookInput{Title: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.books.UpdateBook(ctx, admin, "missing", &UpdateBookInput{Title: strPtr("x")})
	assert.Equal(t, domain.ErrNotFound, domain.Kind(err))
}

func TestGetBookNotFound(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.books.GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestListBooksActiveOnly(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	admin := f.identity(t, f.register(t, "admin", "admin@x.com", domain.AllPermissions()))

	var last string
	for i := 0; i < 5; i++ {
		book, err := f.books.CreateBook(ctx, admin, &CreateBookInput{Title: fmt.Sprintf("Book %d", i), Author: "A"})
		require.NoError(t, err)
		last = book.ID
	}
	_, err := f.books.DeleteBook(ctx, admin, last)
	require.NoError(t, err)

	page, err := f.books.ListBooks(ctx, pagination.New(1, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)

	page, err = f.books.ListBooks(ctx, pagination.New(2, 3))
	require.NoError(t, err)
	assert.False(t, page.Meta.HasNext)
}
