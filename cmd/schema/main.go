package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/database"
	"github.com/stemsi/roster/internal/logger"
)

func main() {
	var dbURL string
	flag.StringVar(&dbURL, "db", "", "Roster database (defaults to DATABASE_URL)")
	flag.Parse()

	// Load config
	cfg := config.Load()
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	zlog := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	db, err := database.Open(ctx, cfg, zlog)
	if err != nil {
		log.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	switch args[0] {
	case "ensure":
		created, err := database.EnsureSchema(ctx, db)
		if err != nil {
			log.Fatalf("Ensure failed: %v", err)
		}
		if created {
			fmt.Printf("Created table %s\n", database.Table)
		} else {
			fmt.Printf("Table %s already exists\n", database.Table)
		}
	case "status":
		exists, err := database.TableExists(ctx, db)
		if err != nil {
			log.Fatalf("Status failed: %v", err)
		}
		fmt.Printf("Dialect: %s, table %s present: %t\n", db.Dialect, database.Table, exists)
	default:
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: schema [flags] <command>")
	fmt.Println("Commands: ensure, status")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
