package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"booksapi/internal/book"
	"booksapi/internal/entity"
	"booksapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationRepo(t *testing.T) *book.PostgresRepo {
	pool := testutil.OpenSeededDB(t)
	return book.NewPostgresRepo(pool, 3*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func titles(t *testing.T, infos []book.BookInfo) []string {
	t.Helper()
	out := make([]string, 0, len(infos))
	for _, i := range infos {
		out = append(out, i.Title)
	}
	return out
}

func TestIntegration_PostgresRepo(t *testing.T) {
	repo := newIntegrationRepo(t)
	svc := book.NewService(repo)
	ctx := context.Background()

	t.Run("list all is ordered and unprojected", func(t *testing.T) {
		books, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, books, 7)
		for i, b := range books {
			assert.Equal(t, i+1, b.BookID)
			assert.Nil(t, b.Author)
		}
		assert.Equal(t, "19.99", priceText(t, books[0]))
	})

	t.Run("get by id", func(t *testing.T) {
		info, err := svc.GetInfo(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, book.BookInfo{
			Title:  "Harry Potter and the Philosopher's Stone",
			Author: "J. K. Rowling",
			Genre:  "Fantasy",
		}, info)

		_, err = svc.GetInfo(ctx, 999)
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("search is a case sensitive substring match", func(t *testing.T) {
		infos, err := svc.Search(ctx, book.SearchQuery{Title: "Harry"})
		require.NoError(t, err)
		assert.Len(t, infos, 2)

		_, err = svc.Search(ctx, book.SearchQuery{Title: "harry"})
		assert.ErrorIs(t, err, book.ErrNotFound)

		_, err = svc.Search(ctx, book.SearchQuery{Title: "100%"})
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("search without title is not found", func(t *testing.T) {
		_, err := svc.Search(ctx, book.SearchQuery{})
		assert.ErrorIs(t, err, book.ErrNotFound)

		_, err = svc.Search(ctx, book.SearchQuery{Genre: "Science Fiction"})
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("genre folding agrees for non ascii input", func(t *testing.T) {
		infos, err := svc.ListByGenre(ctx, "ΟΔΟΣ")
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "Odos", infos[0].Title)

		infos, err = svc.ListByGenre(ctx, "οδοσ")
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run("genre ignores case", func(t *testing.T) {
		lower, err := svc.ListByGenre(ctx, "fantasy")
		require.NoError(t, err)
		upper, err := svc.ListByGenre(ctx, "FANTASY")
		require.NoError(t, err)

		assert.Equal(t, titles(t, lower), titles(t, upper))
		assert.Len(t, lower, 4)

		none, err := svc.ListByGenre(ctx, "fant")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("author", func(t *testing.T) {
		infos, err := svc.ListByAuthor(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"The Dispossessed", "A Wizard of Earthsea"}, titles(t, infos))

		infos, err = svc.ListByAuthor(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, infos)
		assert.Empty(t, infos)
	})

	t.Run("publish date matches the whole day", func(t *testing.T) {
		infos, err := svc.ListByPublishDate(ctx, time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, []string{"The Dispossessed", "A Wizard of Earthsea"}, titles(t, infos))

		infos, err = svc.ListByPublishDate(ctx, time.Date(2020, 5, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("bookshelf with books", func(t *testing.T) {
		shelf, err := svc.GetBookshelf(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Fantasy corner", shelf.NamePlate)
		require.Len(t, shelf.Books, 3)
		for _, b := range shelf.Books {
			require.NotNil(t, b.BookshelfID)
			assert.Equal(t, 1, *b.BookshelfID)
		}
	})

	t.Run("empty bookshelf", func(t *testing.T) {
		shelf, err := svc.GetBookshelf(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, shelf.Books)
		assert.Empty(t, shelf.Books)
	})

	t.Run("missing bookshelf", func(t *testing.T) {
		_, err := svc.GetBookshelf(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookshelfNotFound)
	})

	t.Run("idempotent reads", func(t *testing.T) {
		first, err := svc.GetDetail(ctx, 5)
		require.NoError(t, err)
		second, err := svc.GetDetail(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestIntegration_PostgresRepo_CancelledContext(t *testing.T) {
	repo := newIntegrationRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func priceText(t *testing.T, b entity.Book) string {
	t.Helper()
	raw, err := b.Price.MarshalJSON()
	require.NoError(t, err)
	return string(raw)
}
