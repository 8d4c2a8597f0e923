package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"memberdesk/internal/config"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
	"memberdesk/internal/store"
)

// SeedMemberData represents one demo member in the seed file.
type SeedMemberData struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Instagram   string `json:"instagram"`
	Tiktok      string `json:"tiktok"`
	Facebook    string `json:"facebook"`
}

func main() {
	seedFile := flag.String("file", "seed_members.json", "path to the seed members JSON file")
	flag.Parse()

	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	recordStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	log.Printf("Record store ready (driver: %s)", cfg.StoreDriver)

	members, err := loadSeedMembers(*seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed members: %v", err)
	}
	log.Printf("Loaded %d members from %s", len(members), *seedFile)

	userRepo := repository.NewUserRepository(recordStore)
	ctx := context.Background()

	log.Println("Seeding members into the store...")
	seeded, skipped, err := seedMembers(ctx, userRepo, members)
	if err != nil {
		log.Fatalf("Failed to seed members: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New members created: %d", seeded)
	log.Printf("  - Existing members skipped: %d", skipped)
}

// loadSeedMembers reads and parses the seed file.
func loadSeedMembers(path string) ([]SeedMemberData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var members []SeedMemberData
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return members, nil
}

// seedMembers inserts members that do not already exist, matching by email.
func seedMembers(ctx context.Context, repo repository.UserRepository, members []SeedMemberData) (seeded int, skipped int, err error) {
	for _, item := range members {
		existing, err := repo.FindByEmail(ctx, item.Email)
		if err == nil && existing != nil {
			log.Printf("Skipping existing member: %s", item.Email)
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), 10)
		if err != nil {
			return seeded, skipped, fmt.Errorf("failed to hash password for %s: %w", item.Email, err)
		}

		user := &model.User{
			ID:           uuid.New().String(),
			FullName:     item.FullName,
			Email:        strings.ToLower(strings.TrimSpace(item.Email)),
			CountryCode:  item.CountryCode,
			PhoneNumber:  item.PhoneNumber,
			PasswordHash: string(hashed),
			Role:         model.Role(item.Role),
			Status:       model.Status(item.Status),
			Instagram:    item.Instagram,
			Tiktok:       item.Tiktok,
			Facebook:     item.Facebook,
			CreatedAt:    time.Now().UTC(),
		}
		user.Normalize()

		if err := repo.Append(ctx, user); err != nil {
			return seeded, skipped, fmt.Errorf("failed to create %s: %w", item.Email, err)
		}
		seeded++
	}
	return seeded, skipped, nil
}

// newStore picks the Record Store driver from config.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.StoreKey), nil
	case config.StoreDriverMySQL:
		db, err := store.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return store.NewMySQLStore(db, cfg.StoreKey)
	default:
		return store.NewFileStore(cfg.StorePath), nil
	}
}
