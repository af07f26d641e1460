package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"weddingfolio/internal/auth"
	"weddingfolio/internal/config"
	"weddingfolio/internal/domain/services"
	"weddingfolio/internal/repository/postgres"
	"weddingfolio/internal/service/portfolio"
	"weddingfolio/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed weddings")
	clearData := flag.Bool("clear-data", false, "Delete the demo user's weddings, media and folders (keep schema)")
	email := flag.String("email", "demo@weddingfolio.test", "Demo studio account email")
	password := flag.String("password", "demo-password", "Demo studio account password (created only if missing)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// Destructive operations never run against production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: --drop-tables and --clear-data are disabled in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Printf("Dropping tables %v", tables.All())
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Printf("Schema ready (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	userID, err := admin.EnsureUser(ctx, *email, *password, map[string]any{
		"studio_name": "Demo Studio",
	})
	if err != nil {
		log.Fatalf("Failed to provision demo user: %v", err)
	}
	log.Printf("Demo user %s (ID: %s)", *email, userID)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	weddingRepo := postgres.NewWeddingRepository(repoConfig)
	mediaRepo := postgres.NewMediaRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	blobs, err := storage.NewMinioBlobStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	resolver := portfolio.NewPathResolver(folderRepo, logger)
	weddingService := portfolio.NewWeddingService(weddingRepo, mediaRepo, blobs, resolver, txManager, logger)

	if *clearData {
		if err := clearWeddings(ctx, weddingService, userID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Demo weddings cleared")
		return
	}

	existing, err := weddingService.ListWeddings(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to list weddings: %v", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[w.CoupleName] = true
	}

	for _, req := range seedWeddings(userID) {
		if seen[req.CoupleName] {
			log.Printf("Skipping %s (already seeded)", req.CoupleName)
			continue
		}
		wedding, err := weddingService.CreateWedding(ctx, req)
		if err != nil {
			log.Printf("Failed to create wedding %q: %v", req.CoupleName, err)
			continue
		}
		log.Printf("Created wedding %s (ID: %s, folder: %s)", wedding.CoupleName, wedding.ID, wedding.FolderID)
	}

	log.Println("Seeding complete")
}

// clearWeddings deletes every wedding of the owner through the service so
// stored objects are removed too. Folders are left in place.
func clearWeddings(ctx context.Context, svc services.WeddingService, userID string) error {
	weddings, err := svc.ListWeddings(ctx, userID)
	if err != nil {
		return err
	}
	for _, w := range weddings {
		if err := svc.DeleteWedding(ctx, userID, w.ID); err != nil {
			return err
		}
		log.Printf("Deleted wedding %s", w.CoupleName)
	}
	return nil
}

func seedWeddings(userID string) []*services.CreateWeddingRequest {
	notes := "Golden hour portraits among the vines."
	return []*services.CreateWeddingRequest{
		{
			UserID:           userID,
			CoupleName:       "Ana & Luis",
			WeddingDate:      "2025-03-15",
			Venue:            "Bodega Norton",
			City:             "Mendoza",
			Country:          "Argentina",
			WeddingType:      "Vineyard",
			Vendors:          []string{"Flores del Sur", "DJ Malbec"},
			PortfolioConsent: true,
			SocialConsent:    true,
			MinorsConsent:    false,
			Notes:            &notes,
		},
		{
			UserID:           userID,
			CoupleName:       "Bia & Caio",
			WeddingDate:      "2024-11-02",
			Venue:            "Copacabana Palace",
			City:             "Rio de Janeiro",
			Country:          "Brazil",
			WeddingType:      "Beach",
			PortfolioConsent: true,
			SocialConsent:    false,
		},
		{
			UserID:      userID,
			CoupleName:  "Sofía & Mateo",
			City:        "Valparaíso",
			Country:     "Chile",
			WeddingType: "Civil",
		},
	}
}
