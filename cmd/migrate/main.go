package main

import (
	"log"
	"os"

	"quicknotes-be/internal/model"
	"quicknotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn, os.Getenv("GO_ENV"))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// 2. Pre-Migration: extensions (gen_random_uuid needs pgcrypto on PG < 13)
	color.Yellow("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 3. AutoMigrate models
	color.Yellow("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: indexes GORM tags can't express
	color.Yellow("Step 3: Creating GIN index for tag overlap queries...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_tags ON notes USING GIN (tags);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: Database migration completed via GORM.")
}
