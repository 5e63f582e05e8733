package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"credential-auth/config"
	"credential-auth/internal/repository"
	"credential-auth/internal/services"
	"credential-auth/pkg/database"

	"gorm.io/gorm"
)

const usage = `
Credential Auth - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create or update the users table and its indexes
  status      Show database connection and table status
  seed-dev    Create a development user

Flags:
  -email string     Email for seed-dev (default "dev@example.com")
  -username string  Username for seed-dev (default "dev")
  -password string  Password for seed-dev, 4-12 characters (default "devpass")
`

func main() {
	email := flag.String("email", "dev@example.com", "Email for seed-dev")
	username := flag.String("username", "dev", "Username for seed-dev")
	password := flag.String("password", "devpass", "Password for seed-dev")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runSeedDevelopment(db, database.SeedUser{Email: *email, Username: *username, Password: *password})
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("🚀 Running migrations UP...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus(db *gorm.DB) {
	log.Println("🔍 Checking database status...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	if !database.TableExists(db, "users") {
		log.Printf("❌ Table %-10s does not exist", "users")
		return
	}
	count, err := database.GetTableCount(db, "users")
	if err != nil {
		log.Printf("⚠️  Error counting users: %v", err)
		return
	}
	log.Printf("✅ Table %-10s exists (%d rows)", "users", count)
}

func runSeedDevelopment(db *gorm.DB, seed database.SeedUser) {
	log.Println("🌱 Seeding database (development mode)...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	repo := repository.NewUserRepository(db)
	created, err := database.Seed(context.Background(), repo, services.NewArgon2idHasher(), seed)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	if created {
		log.Printf("✅ Development user created: %s", seed.Email)
	} else {
		log.Printf("✅ Development user already present: %s", seed.Email)
	}
}
