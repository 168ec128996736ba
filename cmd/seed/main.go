package main

import (
	"context"
	"os"
	"time"

	"github.com/studimarket/storefront/internal/catalog/repository"
	"github.com/studimarket/storefront/internal/catalog/upstream"
	"github.com/studimarket/storefront/internal/catalog/usecase/command"
	"github.com/studimarket/storefront/pkg/database"
	"github.com/studimarket/storefront/pkg/logger"
)

// Imports the upstream catalog into the local database. Run once at
// provisioning time or on demand to refresh prices and stock.
func main() {
	logger.Init("storefront-seed", getEnv("LOG_LEVEL", "info"), true)

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefrontdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	repo := repository.NewGormProductRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	upstreamURL := getEnv("UPSTREAM_URL", "https://fakestoreapi.com")
	client := upstream.NewClient(upstreamURL)
	sync := command.NewSyncCatalogHandler(repo, client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := sync.Handle(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("upstream", upstreamURL).Msg("Catalog sync failed")
	}

	logger.Logger.Info().
		Str("upstream", upstreamURL).
		Int("fetched", result.Fetched).
		Int("upserted", result.Upserted).
		Int("failed", result.Failed).
		Msg("Catalog sync finished")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
