package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"booksapi/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	logger  *slog.Logger
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) *PostgresRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRepo{db: db, timeout: timeout, logger: logger}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// withConn acquires one pooled connection for the duration of fn and
// releases it on every exit path.
func (r *PostgresRepo) withConn(ctx context.Context, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}

func (r *PostgresRepo) logQuery(ctx context.Context, op, sql string, start time.Time) {
	r.logger.DebugContext(ctx, "executed sql",
		"op", op,
		"query", sql,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (r *PostgresRepo) queryBooks(ctx context.Context, conn *pgxpool.Conn, op string, withAuthor bool, sql string, args []any) ([]entity.Book, error) {
	start := time.Now()
	rows, err := conn.Query(ctx, sql, args...)
	r.logQuery(ctx, op, sql, start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows, withAuthor)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanBook(row pgx.Row, withAuthor bool) (entity.Book, error) {
	var b entity.Book
	dest := []any{
		&b.BookID, &b.Title, &b.Price, &b.Genre, &b.PublishDate,
		&b.Description, &b.AuthorID, &b.BookshelfID,
	}

	var authorID *int
	var authorName *string
	if withAuthor {
		dest = append(dest, &authorID, &authorName)
	}

	if err := row.Scan(dest...); err != nil {
		return entity.Book{}, err
	}
	if authorID != nil && authorName != nil {
		b.Author = &entity.Author{AuthorID: *authorID, Name: *authorName}
	}
	return b, nil
}

func (r *PostgresRepo) list(ctx context.Context, op string, withAuthor bool, build func() (string, []any, error)) ([]entity.Book, error) {
	sql, args, err := build()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	var out []entity.Book
	err = r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		var qerr error
		out, qerr = r.queryBooks(ctx, conn, op, withAuthor, sql, args)
		return qerr
	})
	return out, err
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]entity.Book, error) {
	return r.list(ctx, "list books", false, listAllSQL)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (entity.Book, error) {
	sql, args, err := getByIDSQL(id)
	if err != nil {
		return entity.Book{}, fmt.Errorf("get book: build query: %w", err)
	}

	var b entity.Book
	err = r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		start := time.Now()
		var serr error
		b, serr = scanBook(conn.QueryRow(ctx, sql, args...), true)
		r.logQuery(ctx, "get book", sql, start)
		return serr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Search(ctx context.Context, q SearchQuery) ([]entity.Book, error) {
	return r.list(ctx, "search books", true, func() (string, []any, error) { return searchSQL(q) })
}

func (r *PostgresRepo) ListByGenre(ctx context.Context, genre string) ([]entity.Book, error) {
	return r.list(ctx, "list books by genre", true, func() (string, []any, error) { return listByGenreSQL(genre) })
}

func (r *PostgresRepo) ListByAuthor(ctx context.Context, authorID int) ([]entity.Book, error) {
	return r.list(ctx, "list books by author", true, func() (string, []any, error) { return listByAuthorSQL(authorID) })
}

func (r *PostgresRepo) ListByPublishDate(ctx context.Context, day time.Time) ([]entity.Book, error) {
	return r.list(ctx, "list books by publish date", true, func() (string, []any, error) { return listByPublishDateSQL(day) })
}

// GetBookshelf loads the shelf first and its books with a second query on
// the same connection.
func (r *PostgresRepo) GetBookshelf(ctx context.Context, id int) (entity.Bookshelf, error) {
	shelfSQL, shelfArgs, err := getBookshelfSQL(id)
	if err != nil {
		return entity.Bookshelf{}, fmt.Errorf("get bookshelf: build query: %w", err)
	}
	booksSQL, booksArgs, err := booksOnShelfSQL(id)
	if err != nil {
		return entity.Bookshelf{}, fmt.Errorf("get bookshelf books: build query: %w", err)
	}

	var shelf entity.Bookshelf
	err = r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		start := time.Now()
		err := conn.QueryRow(ctx, shelfSQL, shelfArgs...).Scan(&shelf.BookshelfID, &shelf.NamePlate)
		r.logQuery(ctx, "get bookshelf", shelfSQL, start)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrBookshelfNotFound
			}
			return fmt.Errorf("get bookshelf %d: %w", id, err)
		}

		shelf.Books, err = r.queryBooks(ctx, conn, "list bookshelf books", false, booksSQL, booksArgs)
		return err
	})
	if err != nil {
		return entity.Bookshelf{}, err
	}
	return shelf, nil
}
