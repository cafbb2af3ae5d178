package book

import (
	"fmt"

	"booksapi/internal/entity"
)

// ToInfo projects a book joined with its author.
func ToInfo(b entity.Book) (BookInfo, error) {
	if b.Author == nil {
		return BookInfo{}, fmt.Errorf("book %d: %w", b.BookID, ErrAuthorUnresolved)
	}
	return BookInfo{
		Title:  b.Title,
		Author: b.Author.Name,
		Genre:  b.Genre,
	}, nil
}

// ToInfos projects every book, failing on the first unresolved author. The
// result is never nil.
func ToInfos(books []entity.Book) ([]BookInfo, error) {
	out := make([]BookInfo, 0, len(books))
	for _, b := range books {
		info, err := ToInfo(b)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// ToDetail projects a book joined with its author.
func ToDetail(b entity.Book) (BookDetail, error) {
	if b.Author == nil {
		return BookDetail{}, fmt.Errorf("book %d: %w", b.BookID, ErrAuthorUnresolved)
	}
	return BookDetail{
		Title:       b.Title,
		Genre:       b.Genre,
		PublishDate: b.PublishDate,
		Description: b.Description,
		Price:       b.Price,
		Author:      b.Author.Name,
	}, nil
}
