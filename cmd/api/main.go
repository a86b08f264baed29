package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/watchly-backend/config"
	"github.com/dustin/watchly-backend/internal/catalog"
	"github.com/dustin/watchly-backend/internal/dismissal"
	"github.com/dustin/watchly-backend/internal/profile"
	"github.com/dustin/watchly-backend/internal/recommendation"
	"github.com/dustin/watchly-backend/internal/repository"
	"github.com/dustin/watchly-backend/internal/watchlist"
	"github.com/dustin/watchly-backend/internal/worker"
	"github.com/dustin/watchly-backend/pkg/database"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting watchly backend service")

	// Connect to database with validation and defaults
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	appLogger.Info("Database connection established")

	// Run database migrations for all feature models
	if err := db.AutoMigrate(&watchlist.Item{}, &profile.TasteProfile{}, &dismissal.Dismissal{}, &repository.KVEntry{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	appLogger.Info("Database migration completed")

	// Initialize GORM-based repositories
	watchlistRepo := repository.NewGORMWatchlistRepository(db, appLogger)
	profileRepo := repository.NewGORMProfileRepository(db, appLogger)
	dismissalRepo := repository.NewGORMDismissalRepository(db, appLogger)
	kvStore := repository.NewGORMKVStore(db, appLogger)

	// Initialize catalog API client
	catalogClient, err := catalog.NewClient(&cfg.Catalog)
	if err != nil {
		appLogger.Fatal("Failed to initialize catalog client: " + err.Error())
	}
	appLogger.Info("Catalog client initialized")

	// Initialize business services with dependency injection
	watchlistService := watchlist.NewService(watchlistRepo, appLogger)
	profileService := profile.NewService(profileRepo, appLogger)
	dismissalService, err := dismissal.NewService(&cfg.Recommendation, dismissalRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dismissal service: " + err.Error())
	}

	// Initialize the recommendation engine with injected caches
	engine, err := recommendation.NewEngine(
		&cfg.Recommendation,
		catalogClient,
		watchlistRepo,
		profileRepo,
		dismissalService,
		kvStore,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize recommendation engine: " + err.Error())
	}
	recommendationService := recommendation.NewService(engine, appLogger)

	// Initialize HTTP handlers
	watchlistHandler := watchlist.NewHandler(watchlistService)
	profileHandler := profile.NewHandler(profileService)
	dismissalHandler := dismissal.NewHandler(dismissalService)
	recommendationHandler := recommendation.NewHandler(recommendationService)

	// Initialize background worker for dismissal expiry
	dismissalSweepWorker, err := worker.NewSweepWorker(
		&cfg.Worker,
		"dismissal-sweep",
		dismissalService.SweepExpired,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize sweep worker: " + err.Error())
	}

	// Start background processing
	if err := dismissalSweepWorker.Start(); err != nil {
		appLogger.Error("Failed to start dismissal sweep worker: " + err.Error())
	}

	// Setup HTTP router with middleware
	router := gin.New()

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "watchly-backend",
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"timestamp":    time.Now(),
			"service":      "watchly-backend",
			"sweep_worker": dismissalSweepWorker.IsRunning(),
			"database":     "connected",
		})
	})

	// Create simple JWT validation middleware. Tokens are issued by the
	// external auth service; this service only validates them.
	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production" // default
	}
	authMiddleware := createJWTMiddleware(jwtSecret)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Register feature routes - each feature manages its own routes
		watchlistHandler.RegisterRoutes(v1, authMiddleware)
		profileHandler.RegisterRoutes(v1, authMiddleware)
		dismissalHandler.RegisterRoutes(v1, authMiddleware)
		recommendationHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8080" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 30 * time.Second // default
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop sweep worker first
	if err := dismissalSweepWorker.Stop(); err != nil {
		appLogger.Error("Error stopping sweep worker: " + err.Error())
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}

// createJWTMiddleware creates a simple JWT validation middleware
func createJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
