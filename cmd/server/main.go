package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Timeouts

	"review_system/internal/api"        // Custom package for API handlers
	"review_system/internal/config"     // Custom package for configuration
	"review_system/internal/db"         // Database connection
	"review_system/internal/mail"       // Confirmation mail delivery
	"review_system/internal/middleware" // Custom package for middleware
	"review_system/internal/repository" // Persistence
	"review_system/internal/service"    // Use cases
	"review_system/internal/utils"      // Cache, tokens and codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}

	// Setup the title cache, Redis is optional
	var cache utils.Cache = utils.NopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		cache = utils.NewRedisCache(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR is empty, title responses will not be cached")
	}

	codes, err := utils.NewCodeGenerator(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	if err != nil {
		logrus.Fatalf("failed to set up confirmation codes: %v", err)
	}

	// Repositories and services
	users := repository.NewUserRepository(gdb)
	categories := repository.NewCategoryRepository(gdb)
	genres := repository.NewGenreRepository(gdb)
	titles := repository.NewTitleRepository(gdb)
	reviews := repository.NewReviewRepository(gdb)
	comments := repository.NewCommentRepository(gdb)
	titleCache := service.NewTitleCache(cache, cfg.CacheTTL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Auth: service.NewAuthService(users, codes, mail.New(cfg), service.AuthConfig{
			JWTSecret:         cfg.JWTSecret,
			AccessTokenTTL:    cfg.AccessTokenTTL,
			ReservedUsernames: cfg.ReservedUsernames,
		}),
		Users:          service.NewUserService(users, cfg.ReservedUsernames, titleCache),
		Catalog:        service.NewCatalogService(categories, genres, titleCache),
		Titles:         service.NewTitleService(titles, categories, genres, titleCache),
		Reviews:        service.NewReviewService(titles, reviews, titleCache),
		Comments:       service.NewCommentService(reviews, comments),
		SignupLimiter:  middleware.NewRateLimiter(cfg.SignupRatePerMinute, cfg.SignupBurst),
		TrustedProxies: cfg.TrustedProxies,
		Ping:           sqlDB.PingContext,
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {  // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger applies LOG_FORMAT and LOG_LEVEL
func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
