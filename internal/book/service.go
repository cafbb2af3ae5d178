package book

import (
	"context"
	"time"

	"booksapi/internal/entity"
)

// Service runs the repository query behind each endpoint and projects the
// rows into response records.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns every stored book without projection.
func (s *Service) ListAll(ctx context.Context) ([]entity.Book, error) {
	return s.repo.ListAll(ctx)
}

// GetInfo returns the narrow view of one book.
func (s *Service) GetInfo(ctx context.Context, id int) (BookInfo, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return BookInfo{}, err
	}
	return ToInfo(b)
}

// GetDetail returns the wide view of one book.
func (s *Service) GetDetail(ctx context.Context, id int) (BookDetail, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}
	return ToDetail(b)
}

// Search returns ErrNotFound when nothing matches. Without a title no filter
// is applied, which is also reported as ErrNotFound without querying.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]BookInfo, error) {
	if q.Title == "" {
		return nil, ErrNotFound
	}
	books, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return ToInfos(books)
}

// ListByGenre matches the genre ignoring case.
func (s *Service) ListByGenre(ctx context.Context, genre string) ([]BookInfo, error) {
	return s.project(s.repo.ListByGenre(ctx, genre))
}

// ListByAuthor returns an empty slice for an unknown author.
func (s *Service) ListByAuthor(ctx context.Context, authorID int) ([]BookInfo, error) {
	return s.project(s.repo.ListByAuthor(ctx, authorID))
}

// ListByPublishDate matches on the calendar day of day only.
func (s *Service) ListByPublishDate(ctx context.Context, day time.Time) ([]BookInfo, error) {
	y, m, d := day.Date()
	return s.project(s.repo.ListByPublishDate(ctx, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)))
}

// GetBookshelf returns the shelf with its books, never a nil Books slice.
func (s *Service) GetBookshelf(ctx context.Context, id int) (entity.Bookshelf, error) {
	shelf, err := s.repo.GetBookshelf(ctx, id)
	if err != nil {
		return entity.Bookshelf{}, err
	}
	if shelf.Books == nil {
		shelf.Books = []entity.Book{}
	}
	return shelf, nil
}

func (s *Service) project(books []entity.Book, err error) ([]BookInfo, error) {
	if err != nil {
		return nil, err
	}
	return ToInfos(books)
}
