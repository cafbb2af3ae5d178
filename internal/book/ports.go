package book

import (
	"context"
	"time"

	"booksapi/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the read-only contract for book storage. Methods that
// feed a projection return books with Author populated.
type Repository interface {
	ListAll(ctx context.Context) ([]entity.Book, error)
	GetByID(ctx context.Context, id int) (entity.Book, error)
	Search(ctx context.Context, q SearchQuery) ([]entity.Book, error)
	ListByGenre(ctx context.Context, genre string) ([]entity.Book, error)
	ListByAuthor(ctx context.Context, authorID int) ([]entity.Book, error)
	ListByPublishDate(ctx context.Context, day time.Time) ([]entity.Book, error)
	GetBookshelf(ctx context.Context, id int) (entity.Bookshelf, error)
}
