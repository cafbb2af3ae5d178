package book

import (
	"math/big"
	"testing"
	"time"

	"booksapi/internal/entity"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(cents int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(cents), Exp: -2, Valid: true}
}

func testBook() entity.Book {
	shelf := 1
	return entity.Book{
		BookID:      1,
		Title:       "Harry Potter and the Philosopher's Stone",
		Price:       price(1999),
		Genre:       "Fantasy",
		PublishDate: entity.NewDateTime(time.Date(1997, 6, 26, 14, 30, 0, 0, time.UTC)),
		Description: "A boy learns he is a wizard.",
		AuthorID:    1,
		Author:      &entity.Author{AuthorID: 1, Name: "J. K. Rowling"},
		BookshelfID: &shelf,
	}
}

func TestToInfo(t *testing.T) {
	info, err := ToInfo(testBook())
	require.NoError(t, err)

	assert.Equal(t, BookInfo{
		Title:  "Harry Potter and the Philosopher's Stone",
		Author: "J. K. Rowling",
		Genre:  "Fantasy",
	}, info)
}

func TestToDetail(t *testing.T) {
	b := testBook()
	detail, err := ToDetail(b)
	require.NoError(t, err)

	assert.Equal(t, b.Title, detail.Title)
	assert.Equal(t, b.Genre, detail.Genre)
	assert.Equal(t, b.PublishDate, detail.PublishDate)
	assert.Equal(t, b.Description, detail.Description)
	assert.Equal(t, b.Price, detail.Price)
	assert.Equal(t, "J. K. Rowling", detail.Author)
}

func TestProjection_UnresolvedAuthor(t *testing.T) {
	b := testBook()
	b.Author = nil

	_, err := ToInfo(b)
	assert.ErrorIs(t, err, ErrAuthorUnresolved)

	_, err = ToDetail(b)
	assert.ErrorIs(t, err, ErrAuthorUnresolved)

	_, err = ToInfos([]entity.Book{testBook(), b})
	assert.ErrorIs(t, err, ErrAuthorUnresolved)
}

func TestToInfos_EmptyIsNotNil(t *testing.T) {
	infos, err := ToInfos(nil)
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)
}
