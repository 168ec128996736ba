package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	cartDelivery "github.com/studimarket/storefront/internal/cart/delivery/http"
	cartRepo "github.com/studimarket/storefront/internal/cart/repository"
	catalogDelivery "github.com/studimarket/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	catalogRepo "github.com/studimarket/storefront/internal/catalog/repository"
	catalogCommand "github.com/studimarket/storefront/internal/catalog/usecase/command"
	checkoutDelivery "github.com/studimarket/storefront/internal/checkout/delivery/http"
	checkoutRepo "github.com/studimarket/storefront/internal/checkout/repository"
	checkoutCommand "github.com/studimarket/storefront/internal/checkout/usecase/command"
	checkoutQuery "github.com/studimarket/storefront/internal/checkout/usecase/query"
	"github.com/studimarket/storefront/internal/middleware"
	reviewDelivery "github.com/studimarket/storefront/internal/review/delivery/http"
	reviewdomain "github.com/studimarket/storefront/internal/review/domain"
	reviewRepo "github.com/studimarket/storefront/internal/review/repository"
	userDelivery "github.com/studimarket/storefront/internal/user/delivery/http"
	userRepo "github.com/studimarket/storefront/internal/user/repository"
	wishlistDelivery "github.com/studimarket/storefront/internal/wishlist/delivery/http"
	wishlistdomain "github.com/studimarket/storefront/internal/wishlist/domain"
	wishlistRepo "github.com/studimarket/storefront/internal/wishlist/repository"
	"github.com/studimarket/storefront/kafka"
	"github.com/studimarket/storefront/pkg/database"
	"github.com/studimarket/storefront/pkg/logger"
	"github.com/studimarket/storefront/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, getEnv("LOG_LEVEL", "info"), isDevelopment)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting storefront service")

	// Tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Database
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

	// Product repository
	productRepo := catalogRepo.NewGormProductRepositoryWithTracing(db)
	if err := productRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run catalog migrations")
	}

	orderRepo, err := checkoutRepo.NewGormOrderRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run order migrations")
	}
	usersRepo, err := userRepo.NewGormUserRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis backs session state; without it the service falls back to
	// in-process storage, fine for local development only.
	var redisClient *redis.Client
	var carts cartdomain.CartRepository
	var wishlists wishlistdomain.WishlistRepository
	var reviews reviewdomain.ReviewRepository
	if addr := getEnv("REDIS_ADDR", "localhost:6379"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
		}
		carts = cartRepo.NewRedisCartRepository(redisClient)
		wishlists = wishlistRepo.NewRedisWishlistRepository(redisClient)
		reviews = reviewRepo.NewRedisReviewRepository(redisClient)
		logger.Logger.Info().Str("addr", addr).Msg("Redis initialized")
	} else {
		carts = cartRepo.NewInMemoryCartRepository()
		wishlists = wishlistRepo.NewInMemoryWishlistRepository()
		reviews = reviewRepo.NewInMemoryReviewRepository()
		logger.Logger.Warn().Msg("REDIS_ADDR empty, using in-memory session storage")
	}

	// Kafka is optional; without brokers orders complete but no events flow
	var publisher checkoutCommand.EventPublisher
	brokers := splitBrokers(getEnv("KAFKA_BROKERS", ""))
	if len(brokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		startConsumer(brokers, productRepo)
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS empty, order events disabled")
	}

	checkoutDelay := 2 * time.Second
	if v := os.Getenv("CHECKOUT_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			checkoutDelay = d
		}
	}

	// Handlers
	catalogHandler := catalogDelivery.NewCatalogHandler(productRepo)
	cartHandler := cartDelivery.NewCartHandler(carts, productRepo)
	wishlistHandler := wishlistDelivery.NewWishlistHandler(wishlists, carts, productRepo)
	checkoutHandler := checkoutDelivery.NewCheckoutHandler(
		checkoutCommand.NewPlaceOrderHandler(orderRepo, carts, productRepo, publisher, checkoutDelay),
		checkoutQuery.NewGetOrderHandler(orderRepo),
	)
	reviewHandler := reviewDelivery.NewReviewHandler(reviews, productRepo)
	userHandler := userDelivery.NewUserHandler(usersRepo)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))

	router.HandleFunc("/health", healthHandler(sqlDB)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())
	catalogDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	userHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	wishlistHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)

	// Catalog reads go through the response cache. Registered last so the
	// more specific routes above win.
	cached := router.NewRoute().Subrouter()
	cached.Use(middleware.Cache(redisClient, middleware.DefaultCacheConfig()))
	catalogHandler.RegisterRoutes(cached)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: otelhttp.NewHandler(c.Handler(router), "storefront"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// startConsumer decrements stock for every order line placed
func startConsumer(brokers []string, products catalogdomain.ProductRepository) {
	consumer, err := kafka.NewConsumer(brokers, "storefront-stock", []string{kafka.TopicOrderPlaced})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}

	adjustStock := catalogCommand.NewAdjustStockHandler(products)
	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, func(ctx context.Context, event kafka.OrderPlacedEvent) error {
		return adjustStock.Handle(catalogCommand.AdjustStockCommand{
			ProductID: event.ProductID,
			Quantity:  -int(event.Quantity),
			Relative:  true,
		})
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

func splitBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
