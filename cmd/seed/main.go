// Command seed creates a verified development admin user and a sample book.
// It is idempotent; rerunning against a seeded database changes nothing.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	bookdomain "unibook/backend/internal/book/domain"
	bookrepository "unibook/backend/internal/book/repository"
	"unibook/backend/internal/config"
	"unibook/backend/internal/db"
	"unibook/backend/internal/security"
	userdomain "unibook/backend/internal/user/domain"
	userrepository "unibook/backend/internal/user/repository"
)

const (
	seedEmail    = "admin@unibook.dev"
	seedPassword = "admin-dev-password"
	seedName     = "Dev Admin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("refusing to seed a production database")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := userrepository.NewPostgresUserRepository(database)
	books := bookrepository.NewPostgresBookRepository(database)

	admin, err := users.GetByEmail(ctx, seedEmail)
	if err != nil {
		log.Fatalf("lookup seed user: %v", err)
	}
	if admin == nil {
		hash, err := security.NewHasher(cfg.BcryptCost).Hash(seedPassword)
		if err != nil {
			log.Fatalf("hash seed password: %v", err)
		}
		now := time.Now().UTC()
		admin = &userdomain.User{
			ID:           uuid.NewString(),
			Email:        seedEmail,
			PasswordHash: hash,
			Name:         seedName,
			IsVerified:   true,
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("create seed user: %v", err)
		}
		log.Printf("created admin user %s", seedEmail)
	} else {
		log.Printf("admin user %s already exists", seedEmail)
	}

	existing, err := books.ListByUser(ctx, admin.ID)
	if err != nil {
		log.Fatalf("list seed books: %v", err)
	}
	if len(existing) > 0 {
		log.Print("sample book already exists")
		return
	}

	pages := 40
	sample := &bookdomain.Book{
		ID:         uuid.NewString(),
		UserID:     admin.ID,
		Title:      "Getting Started with Unibook",
		CoverImage: "",
		Requirements: &bookdomain.Requirements{
			Topic:             "Using the Unibook platform",
			TargetAudience:    "New authors",
			Tone:              "friendly",
			KeyGoals:          []string{"create a book", "track drafts"},
			PageCountEstimate: &pages,
		},
		Outline: []bookdomain.OutlineEntry{
			{ChapterNumber: 1, Title: "Your First Book", Description: "Creating and editing drafts", KeyPoints: []string{"drafts", "outlines"}},
		},
		Chapters:  []bookdomain.Chapter{},
		Status:    bookdomain.StatusDraft,
		CreatedAt: time.Now().UTC().UnixMilli(),
	}
	if err := books.Create(ctx, sample); err != nil {
		log.Fatalf("create sample book: %v", err)
	}
	log.Print("created sample book")
}
