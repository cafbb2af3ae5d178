// Package seed loads a small deterministic catalogue used by local
// development and the integration tests.
package seed

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"booksapi/internal/entity"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

func price(cents int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(cents), Exp: -2, Valid: true}
}

func shelf(id int) *int { return &id }

func day(y int, m time.Month, d, hh, mm int) entity.DateTime {
	return entity.NewDateTime(time.Date(y, m, d, hh, mm, 0, 0, time.UTC))
}

var Authors = []entity.Author{
	{AuthorID: 1, Name: "J. K. Rowling"},
	{AuthorID: 2, Name: "J. R. R. Tolkien"},
	{AuthorID: 3, Name: "Frank Herbert"},
	{AuthorID: 4, Name: "Ursula K. Le Guin"},
}

var Bookshelves = []entity.Bookshelf{
	{BookshelfID: 1, NamePlate: "Fantasy corner"},
	{BookshelfID: 2, NamePlate: "Science fiction"},
	{BookshelfID: 3, NamePlate: "Returns"},
}

var Books = []entity.Book{
	{
		BookID: 1, Title: "Harry Potter and the Philosopher's Stone", Price: price(1999),
		Genre: "Fantasy", PublishDate: day(1997, time.June, 26, 14, 30),
		Description: "A boy learns on his eleventh birthday that he is a wizard.",
		AuthorID:    1, BookshelfID: shelf(1),
	},
	{
		BookID: 2, Title: "Harry Potter and the Chamber of Secrets", Price: price(2099),
		Genre: "Fantasy", PublishDate: day(1998, time.July, 2, 0, 0),
		Description: "The second year at Hogwarts.",
		AuthorID:    1, BookshelfID: shelf(1),
	},
	{
		BookID: 3, Title: "The Hobbit", Price: price(1450),
		Genre: "fantasy", PublishDate: day(1937, time.September, 21, 9, 0),
		Description: "Bilbo Baggins is swept into a quest.",
		AuthorID:    2, BookshelfID: shelf(1),
	},
	{
		BookID: 4, Title: "Dune", Price: price(1800),
		Genre: "Science Fiction", PublishDate: day(1965, time.August, 1, 0, 0),
		Description: "Politics and prophecy on a desert planet.",
		AuthorID:    3, BookshelfID: shelf(2),
	},
	{
		BookID: 5, Title: "The Dispossessed", Price: price(1525),
		Genre: "Science Fiction", PublishDate: day(2020, time.May, 1, 14, 30),
		Description: "An anniversary edition of the ambiguous utopia.",
		AuthorID:    4, BookshelfID: shelf(2),
	},
	{
		BookID: 6, Title: "A Wizard of Earthsea", Price: price(1299),
		Genre: "FANTASY", PublishDate: day(2020, time.May, 1, 23, 59),
		Description: "A young mage unleashes a shadow.",
		AuthorID:    4, BookshelfID: nil,
	},
	{
		BookID: 7, Title: "Odos", Price: price(990),
		Genre: "ΟΔΟΣ", PublishDate: day(2001, time.March, 3, 12, 0),
		Description: "Travel notes with a genre outside ASCII.",
		AuthorID:    3, BookshelfID: nil,
	},
}

// Load replaces every row in the catalogue tables with the fixtures above
// in a single transaction.
func Load(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE books, bookshelves, authors RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		authors := make([]any, 0, len(Authors))
		for _, a := range Authors {
			authors = append(authors, goqu.Record{"author_id": a.AuthorID, "name": a.Name})
		}
		shelves := make([]any, 0, len(Bookshelves))
		for _, s := range Bookshelves {
			shelves = append(shelves, goqu.Record{"bookshelf_id": s.BookshelfID, "name_plate": s.NamePlate})
		}
		books := make([]any, 0, len(Books))
		for _, b := range Books {
			books = append(books, goqu.Record{
				"book_id":      b.BookID,
				"title":        b.Title,
				"price":        b.Price,
				"genre":        b.Genre,
				"publish_date": b.PublishDate,
				"description":  b.Description,
				"author_id":    b.AuthorID,
				"bookshelf_id": b.BookshelfID,
			})
		}

		for _, ins := range []struct {
			table, key string
			rows       []any
		}{
			{"authors", "author_id", authors},
			{"bookshelves", "bookshelf_id", shelves},
			{"books", "book_id", books},
		} {
			sql, args, err := dialect.Insert(ins.table).Prepared(true).Rows(ins.rows...).ToSQL()
			if err != nil {
				return fmt.Errorf("build insert %s: %w", ins.table, err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("insert %s: %w", ins.table, err)
			}
			resync := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', '%s'), (SELECT MAX(%s) FROM %s))",
				ins.table, ins.key, ins.key, ins.table)
			if _, err := tx.Exec(ctx, resync); err != nil {
				return fmt.Errorf("resync %s sequence: %w", ins.table, err)
			}
		}
		return nil
	})
}
