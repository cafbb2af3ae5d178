package book

import (
	"errors"

	"booksapi/internal/entity"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	// ErrNotFound is returned when no book matches.
	ErrNotFound = errors.New("book not found")
	// ErrBookshelfNotFound is returned when no bookshelf matches.
	ErrBookshelfNotFound = errors.New("bookshelf not found")
	// ErrAuthorUnresolved is returned when a book's author row could not be
	// loaded alongside it.
	ErrAuthorUnresolved = errors.New("book author could not be resolved")
)

// BookInfo is the narrow view of a book.
type BookInfo struct {
	Title  string `json:"Title"`
	Author string `json:"Author"`
	Genre  string `json:"Genre"`
}

// BookDetail is the wide view of a book. Identifiers are left out.
type BookDetail struct {
	Title       string          `json:"Title"`
	Genre       string          `json:"Genre"`
	PublishDate entity.DateTime `json:"PublishDate"`
	Description string          `json:"Description"`
	Price       pgtype.Numeric  `json:"Price"`
	Author      string          `json:"Author"`
}

// SearchQuery holds the search endpoint filters. Genre is accepted but not
// used for filtering.
type SearchQuery struct {
	Title string
	Genre string
}
