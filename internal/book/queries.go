package book

import (
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const (
	tableBooks       = "books"
	tableAuthors     = "authors"
	tableBookshelves = "bookshelves"
)

var dialect = goqu.Dialect("postgres")

var bookColumns = []any{
	goqu.I("b.book_id"),
	goqu.I("b.title"),
	goqu.I("b.price"),
	goqu.I("b.genre"),
	goqu.I("b.publish_date"),
	goqu.I("b.description"),
	goqu.I("b.author_id"),
	goqu.I("b.bookshelf_id"),
}

var authorColumns = []any{
	goqu.I("a.author_id"),
	goqu.I("a.name"),
}

func booksFrom() *goqu.SelectDataset {
	return dialect.From(goqu.T(tableBooks).As("b")).Prepared(true)
}

// booksWithAuthor left joins authors so that a dangling author reference
// surfaces as a NULL author instead of a silently missing book.
func booksWithAuthor() *goqu.SelectDataset {
	cols := append(append([]any{}, bookColumns...), authorColumns...)
	return booksFrom().
		LeftJoin(goqu.T(tableAuthors).As("a"), goqu.On(goqu.I("a.author_id").Eq(goqu.I("b.author_id")))).
		Select(cols...).
		Order(goqu.I("b.book_id").Asc())
}

func listAllSQL() (string, []any, error) {
	return booksFrom().
		Select(bookColumns...).
		Order(goqu.I("b.book_id").Asc()).
		ToSQL()
}

func getByIDSQL(id int) (string, []any, error) {
	return booksWithAuthor().
		Where(goqu.I("b.book_id").Eq(id)).
		Limit(1).
		ToSQL()
}

func searchSQL(q SearchQuery) (string, []any, error) {
	ds := booksWithAuthor()
	if q.Title != "" {
		ds = ds.Where(goqu.I("b.title").Like("%" + escapeLike(q.Title) + "%"))
	}
	return ds.ToSQL()
}

func listByGenreSQL(genre string) (string, []any, error) {
	return booksWithAuthor().
		Where(goqu.Func("LOWER", goqu.I("b.genre")).Eq(goqu.Func("LOWER", genre))).
		ToSQL()
}

func listByAuthorSQL(authorID int) (string, []any, error) {
	return booksWithAuthor().
		Where(goqu.I("b.author_id").Eq(authorID)).
		ToSQL()
}

func listByPublishDateSQL(day time.Time) (string, []any, error) {
	start, end := dayRange(day)
	return booksWithAuthor().
		Where(
			goqu.I("b.publish_date").Gte(start),
			goqu.I("b.publish_date").Lt(end),
		).
		ToSQL()
}

func getBookshelfSQL(id int) (string, []any, error) {
	return dialect.From(tableBookshelves).Prepared(true).
		Select(goqu.C("bookshelf_id"), goqu.C("name_plate")).
		Where(goqu.C("bookshelf_id").Eq(id)).
		Limit(1).
		ToSQL()
}

func booksOnShelfSQL(shelfID int) (string, []any, error) {
	return booksFrom().
		Select(bookColumns...).
		Where(goqu.I("b.bookshelf_id").Eq(shelfID)).
		Order(goqu.I("b.book_id").Asc()).
		ToSQL()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using the default
// backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}


// dayRange returns the half-open range [midnight, next midnight) of the
// calendar day of t, keeping t's wall clock and dropping its zone.
func dayRange(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
