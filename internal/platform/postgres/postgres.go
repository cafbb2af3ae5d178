// Package postgres opens the connection pool and runs schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const pingTimeout = 5 * time.Second

// Open creates a pool for dsn and verifies that the server answers.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Command is a goose migration command.
type Command string

const (
	CommandUp     Command = "up"
	CommandDown   Command = "down"
	CommandStatus Command = "status"
	CommandReset  Command = "reset"
)

// ParseCommand validates a command name given on the command line.
func ParseCommand(s string) (Command, error) {
	switch c := Command(s); c {
	case CommandUp, CommandDown, CommandStatus, CommandReset:
		return c, nil
	default:
		return "", fmt.Errorf("unknown migration command %q", s)
	}
}

// Migrate runs cmd against the migrations in dir. The pool stays open.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, cmd Command) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	goose.SetBaseFS(nil)

	return run(ctx, db, dir, cmd)
}

func run(ctx context.Context, db *sql.DB, dir string, cmd Command) error {
	var err error
	switch cmd {
	case CommandUp:
		err = goose.UpContext(ctx, db, dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, dir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cmd, err)
	}
	return nil
}
