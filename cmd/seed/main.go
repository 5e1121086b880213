package main

import (
	"log"
	"os"

	"quicknotes-be/internal/model"
	"quicknotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@quicknotes.dev"
	demoPassword = "demo-password"
)

func main() {
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

	color.Cyan("Seeding demo account...")

	var existing model.User
	if err := db.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
		color.Yellow("Demo user already exists, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	user := model.User{
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create demo user: %v", err)
	}
	color.Green("Created user: %s", user.Email)

	notes := []model.Note{
		{UserId: user.Id, Title: "Welcome to QuickNotes", Content: "Create, tag and search your notes from the API or the web client.", Tags: pq.StringArray{"welcome", "docs"}},
		{UserId: user.Id, Title: "Grocery list", Content: "Eggs, coffee, rye bread, olive oil.", Tags: pq.StringArray{"personal", "shopping"}},
		{UserId: user.Id, Title: "Standup notes", Content: "Cache invalidation rollout went fine. Next: pagination polish.", Tags: pq.StringArray{"work", "standup"}},
		{UserId: user.Id, Title: "Reading backlog", Content: "Designing Data-Intensive Applications, ch. 5 onwards.", Tags: pq.StringArray{"personal", "reading"}},
		{UserId: user.Id, Title: "Untagged scratchpad", Content: "Ideas without a home yet."},
	}
	for _, n := range notes {
		note := n
		if err := db.Create(&note).Error; err != nil {
			log.Printf("Error creating note %q: %v", n.Title, err)
			continue
		}
		color.Green("Created note: %s", note.Title)
	}

	color.Cyan("Seeding completed. Login with %s / %s", demoEmail, demoPassword)
}
