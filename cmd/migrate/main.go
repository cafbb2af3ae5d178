package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"booksapi/internal/config"
	"booksapi/internal/platform/postgres"

	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, reset, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	migrationsDir := config.MigrationsDir()

	if *command == "create" {
		if err := create(migrationsDir, *name); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	cmd, err := postgres.ParseCommand(*command)
	if err != nil {
		log.Fatalf("%v. Use: up, down, status, reset, create", err)
	}

	ctx := context.Background()
	dsn := config.DSN()
	pool, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.RedactDSN(dsn), err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, migrationsDir, cmd); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cmd != postgres.CommandStatus {
		fmt.Printf("Migrations %s applied successfully\n", cmd)
	}
}

func create(dir, name string) error {
	if name == "" {
		return fmt.Errorf("name is required for 'create' command")
	}
	goose.SetSequential(true)
	return goose.Create(nil, dir, name, "sql")
}
