// Command migrate applies the database schema for the backend.
package main

import (
	"log"

	"verser/internal/config"
	"verser/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.MigrationModels...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migrated")
}
