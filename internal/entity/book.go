package entity

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Book is a row of the books table. Author is only set when the query joined
// the authors table.
type Book struct {
	BookID      int            `json:"BookId"`
	Title       string         `json:"Title"`
	Price       pgtype.Numeric `json:"Price"`
	Genre       string         `json:"Genre"`
	PublishDate DateTime       `json:"PublishDate"`
	Description string         `json:"Description"`
	AuthorID    int            `json:"AuthorId"`
	Author      *Author        `json:"Author,omitempty"`
	BookshelfID *int           `json:"BookshelfId"`
}
