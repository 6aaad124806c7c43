package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	blockedRepo "slotify/database/repository/blocked"
	bookingRepo "slotify/database/repository/booking"
	memberRepo "slotify/database/repository/member"
	providerRepo "slotify/database/repository/provider"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/scheduling"
	"slotify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	memRepo := memberRepo.NewMongoMemberRepo()
	blkRepo := blockedRepo.NewMongoBlockedRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	for name, repo := range map[string]interface{ EnsureIndexes() error }{
		"providers":       provRepo,
		"members":         memRepo,
		"blocked_periods": blkRepo,
		"bookings":        bookRepo,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		ProviderRepo: provRepo,
		MemberRepo:   memRepo,
		BlockedRepo:  blkRepo,
		BookingRepo:  bookRepo,
	}

	cache := utils.GetCacheClient()

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(schedulingService, cache, logger),
		Blocked:      handlers.NewBlockedPeriodHandler(schedulingService, cache, logger),
		Booking:      handlers.NewBookingHandler(schedulingService, cache, logger),
		Members:      handlers.NewMemberHandler(memRepo, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background maintenance and health monitoring.
	cron.InitMaintenanceWorker(blkRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{cache, utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
