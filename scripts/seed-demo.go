// Command seed-demo loads a small demo dataset: two members, a few listed
// items, and one pending barter request between them.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appItem "github.com/prashana14/StudyReuse-sub000/internal/application/item"
	appUser "github.com/prashana14/StudyReuse-sub000/internal/application/user"
	"github.com/prashana14/StudyReuse-sub000/internal/config"
	domainBarter "github.com/prashana14/StudyReuse-sub000/internal/domain/barter"
	domainItem "github.com/prashana14/StudyReuse-sub000/internal/domain/item"
	domainUser "github.com/prashana14/StudyReuse-sub000/internal/domain/user"
	"github.com/prashana14/StudyReuse-sub000/internal/infrastructure/postgres"
)

func main() {
	migrationsDir := flag.String("migrations", "internal/migrations", "migrations directory")
	flag.Parse()

	logger := zerolog.Nop()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, *migrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	barterRepo := postgres.NewBarterRepository(pool)

	userSvc := appUser.NewService(userRepo, logger)
	itemSvc := appItem.NewService(itemRepo, logger)

	alice := mustUser(ctx, userSvc, "alice", "alice@campus.example")
	bob := mustUser(ctx, userSvc, "bob", "bob@campus.example")

	textbook := mustItem(ctx, itemSvc, bob.UserID, appItem.CreateInput{
		Title:     "Calculus Early Transcendentals",
		Category:  "textbook",
		Condition: domainItem.ConditionUsed,
	})
	notes := mustItem(ctx, itemSvc, alice.UserID, appItem.CreateInput{
		Title:     "Organic Chemistry Notes",
		Category:  "notes",
		Condition: domainItem.ConditionLikeNew,
	})
	mustItem(ctx, itemSvc, alice.UserID, appItem.CreateInput{
		Title:     "TI-84 Graphing Calculator",
		Category:  "equipment",
		Condition: domainItem.ConditionWellWorn,
	})

	b := domainBarter.NewBarterRequest(textbook.ItemID, notes.ItemID, alice.UserID, bob.UserID,
		`Exchange "Organic Chemistry Notes" for "Calculus Early Transcendentals"`)
	if err := barterRepo.Create(ctx, b); err != nil {
		log.Fatalf("seed barter: %v", err)
	}

	log.Printf("seeded users alice/bob (password Demo-Password1!), barter %s", b.BarterID)
}

func mustUser(ctx context.Context, svc *appUser.Service, username, email string) *domainUser.User {
	u, err := svc.CreateUser(ctx, appUser.CreateInput{
		Username: username,
		Email:    email,
		Password: "Demo-Password1!",
	})
	if err != nil {
		log.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func mustItem(ctx context.Context, svc *appItem.Service, owner uuid.UUID, input appItem.CreateInput) *domainItem.Item {
	it, err := svc.CreateItem(ctx, owner, input)
	if err != nil {
		log.Fatalf("seed item %s: %v", input.Title, err)
	}
	return it
}
