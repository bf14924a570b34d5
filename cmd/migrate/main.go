package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"matchpoint-api/config"
	"matchpoint-api/migrations"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	migrator := migrations.NewMigrator(config.DB)

	for _, migration := range migrations.GetCoreMigrations() {
		migrator.AddMigration(migration)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal("Migration failed: ", err)
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal("Rollback failed: ", err)
		}
	case "status":
		showStatus(migrator)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate           - Run pending migrations")
	fmt.Println("  rollback [steps]  - Rollback migration batches (default: 1)")
	fmt.Println("  status            - Show migration status")
}

func showStatus(migrator *migrations.Migrator) {
	records := migrator.Status()
	if len(records) == 0 {
		fmt.Println("No migrations have been run yet.")
		return
	}

	fmt.Println("Batch | Name")
	fmt.Println("------|-----")
	for _, record := range records {
		fmt.Printf("%-5d | %s\n", record.Batch, record.Name)
	}
}
