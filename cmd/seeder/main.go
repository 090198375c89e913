// Seeder creates demo accounts for local development.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/voicecart/internal/config"
	"github.com/foxxcyber/voicecart/internal/database"
)

type demoUser struct {
	Email    string
	Password string
	Username string
	Language string
}

var demoUsers = []demoUser{
	{Email: "demo@voicecart.local", Password: "demo-password", Username: "demo", Language: "en"},
	{Email: "priya@voicecart.local", Password: "demo-password", Username: "priya", Language: "hi"},
}

func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	for _, u := range demoUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		username := u.Username
		_, err = db.CreateUser(ctx, u.Email, string(hashed), &username, u.Language)
		if err != nil {
			if errors.Is(err, database.ErrEmailExists) || errors.Is(err, database.ErrUsernameExists) {
				log.Printf("User %s already exists, skipping", u.Email)
				continue
			}
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		log.Printf("Created demo user %s", u.Email)
	}
}
