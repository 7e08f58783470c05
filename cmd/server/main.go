package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/cache"
	"crm-backend/internal/config"
	"crm-backend/internal/handlers"
	"crm-backend/internal/health"
	h "crm-backend/internal/http"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"
	"crm-backend/internal/store"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, db, err := store.Connect(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()
	log.Printf("Connected to database: %s", cfg.Mongo.Database)

	// Ensure indexes (unique email, lead lookups, lockout TTL)
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = store.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	cacheClient, err := cache.New(cfg)
	if err != nil {
		log.Printf("[Redis] Cache unavailable: %v (management lists served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(client)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	throttleRepo := repositories.NewThrottleRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	targetRepo := repositories.NewTargetRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	managementRepo := repositories.NewManagementRepository(db)

	// Initialize services
	throttleService := services.NewLoginThrottleService(throttleRepo, cfg)
	authService := services.NewAuthService(accountRepo, throttleService, jwtManager)
	accountService := services.NewAccountService(accountRepo, leadRepo, targetRepo)
	achievementService := services.NewAchievementService(leadRepo, targetRepo)
	leadService := services.NewLeadService(leadRepo)
	targetService := services.NewTargetService(targetRepo, achievementService)
	eventService := services.NewEventService(eventRepo)
	taskService := services.NewTaskService(taskRepo)
	managementService := services.NewManagementService(managementRepo, cacheClient)

	// Seed the default administrator account on first boot
	adminEmail := os.Getenv("DEFAULT_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@lead.com"
	}
	adminPassword := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	accountService.SeedDefaultAdmin(ctx, adminEmail, adminPassword)
	cancel()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, accountRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(accountService)
	leadHandler := handlers.NewLeadHandler(leadService, achievementService)
	targetHandler := handlers.NewTargetHandler(targetService)
	eventHandler := handlers.NewEventHandler(eventService)
	taskHandler := handlers.NewTaskHandler(taskService)
	managementHandler := handlers.NewManagementHandler(managementService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(
		authHandler,
		userHandler,
		leadHandler,
		targetHandler,
		eventHandler,
		taskHandler,
		managementHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
