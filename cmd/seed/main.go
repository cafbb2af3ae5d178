package main

import (
	"context"
	"log"

	"booksapi/internal/config"
	"booksapi/internal/platform/postgres"
	"booksapi/internal/seed"
)

func main() {
	ctx := context.Background()
	config.LoadEnvFiles()

	dsn := config.DSN()
	pool, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.RedactDSN(dsn), err)
	}
	defer pool.Close()

	log.Printf("Loading %d authors, %d bookshelves and %d books...",
		len(seed.Authors), len(seed.Bookshelves), len(seed.Books))
	if err := seed.Load(ctx, pool); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}
