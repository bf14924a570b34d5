package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the postgres connection from DATABASE_URL (or the
// individual DB_* variables) and stores it in the package-level DB handle.
func ConnectDatabase() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			envString("DB_HOST", "localhost"),
			envString("DB_USER", "matchpoint"),
			os.Getenv("DB_PASSWORD"),
			envString("DB_NAME", "matchpoint"),
			envString("DB_PORT", "5432"),
			envString("DB_SSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = db
	log.Println("Database connection established")
}
