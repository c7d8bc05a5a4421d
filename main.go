package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomie/config"
	"roomie/cron"
	"roomie/database"
	reservationRepo "roomie/database/repository/reservation"
	"roomie/handlers"
	"roomie/routes"
	"roomie/services/booking"
	ai "roomie/services/intelligence"
	"roomie/services/session"
	"roomie/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// The extractor is the service's one external collaborator; refuse to
	// come up without it.
	llm := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err := ai.VerifyAvailability(context.Background(), llm); err != nil {
		logger.Sugar().Fatalf("main: LLM is unavailable: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	repo := reservationRepo.NewCachedReservationRepo(
		reservationRepo.NewMongoReservationRepo(),
		utils.GetCacheClient(),
		utils.ReservationCacheTTL,
	)

	// Reminder queue.
	reminders := cron.NewAsynqReminderScheduler()
	defer reminders.Close()
	cron.InitReminderWorker(repo)

	// Services.
	registry := session.NewRegistry(ai.Greeting(config.AppConfig.HotelName))
	bookingService := &booking.DefaultService{
		Registry:  registry,
		Extractor: ai.NewDefaultExtractor(llm),
		Repo:      repo,
		Reminders: reminders,
		Logger:    logger,
	}

	chatHandler := handlers.NewChatHandler(bookingService)
	healthHandler := handlers.NewHealthHandler(database.MongoClient, utils.GetCacheClient())

	// Register routes.
	routes.RegisterRoutes(router, chatHandler, healthHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
