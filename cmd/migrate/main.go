package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory containing .sql migration files")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	for _, file := range files {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = $1", file).Scan(&count); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}
		if count > 0 {
			fmt.Printf("Migration already applied: %s\n", file)
			continue
		}

		content, err := os.ReadFile(filepath.Join(*dir, file))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("failed to start transaction: %v", err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			log.Fatalf("failed to apply migration %s: %v", file, err)
		}

		if _, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", file); err != nil {
			_ = tx.Rollback()
			log.Fatalf("failed to record migration %s: %v", file, err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("failed to commit migration %s: %v", file, err)
		}

		fmt.Printf("Applied migration: %s\n", file)
	}

	fmt.Println("All migrations applied.")
}
