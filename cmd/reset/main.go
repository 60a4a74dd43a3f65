package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/database"
)

func main() {
	cfg, err := config.LoadForTooling()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx := context.Background()
	switch cfg.DBDriver {
	case config.DriverSQLite:
		err = resetSQLite(cfg.SQLitePath)
	default:
		err = resetPostgres(ctx, cfg)
	}
	if err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Println("\n✅ Database reset complete!")
	log.Println("Next step: run 'go run ./cmd/migrate up' or start the server to apply migrations")
}

// resetSQLite removes the database file together with its WAL side files
func resetSQLite(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	log.Printf("SQLite database %s removed.\n", path)
	return nil
}

// resetPostgres drops and recreates DB_NAME through the maintenance database
func resetPostgres(ctx context.Context, cfg *config.Config) error {
	dbName := cfg.DBName
	serverConnString := strings.Replace(cfg.GetDBConnString(), "/"+dbName+"?", "/postgres?", 1)

	serverPool, err := database.NewPool(ctx, serverConnString, 2, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer serverPool.Close()

	log.Printf("Terminating existing connections to database %s...\n", dbName)
	_, err = serverPool.Exec(ctx, `
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v\n", err)
	}

	ident := pgx.Identifier{dbName}.Sanitize()

	log.Printf("Dropping database %s if it exists...\n", dbName)
	if _, err := serverPool.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	log.Printf("Creating database %s...\n", dbName)
	if _, err := serverPool.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	log.Printf("Database %s created successfully.\n", dbName)
	return nil
}
