// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kerubo0/Rafiki/config"
	"github.com/Kerubo0/Rafiki/database"
	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/handlers"
	"github.com/Kerubo0/Rafiki/routes"
	"github.com/Kerubo0/Rafiki/services/assistant"
	"github.com/Kerubo0/Rafiki/services/booking"
	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/intelligence"
	"github.com/Kerubo0/Rafiki/services/notification"
	"github.com/Kerubo0/Rafiki/services/session"
	"github.com/Kerubo0/Rafiki/services/tasks"
	"github.com/Kerubo0/Rafiki/utils"
	"github.com/Kerubo0/Rafiki/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
	} else {
		logger.Sugar().Info("main: no DATABASE_URL configured, bookings will be kept in memory")
	}
	if utils.RedisConfigured() {
		utils.InitSessionCache()
	} else {
		logger.Sugar().Info("main: no REDIS_ADDR configured, sessions will be kept in memory")
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute

	// Session store.
	var sessionStore session.Store
	if utils.RedisConfigured() {
		sessionStore = session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	// Booking repository.
	var repo bookingRepo.Repository
	if database.MongoClient != nil {
		repo = bookingRepo.NewMongoBookingRepo()
	} else {
		repo = bookingRepo.NewMemoryBookingRepo()
	}

	// SMS gateway.
	var smsSender notification.SMSSender = notification.NoopSender{}
	if config.AppConfig.ATUsername != "" && config.AppConfig.ATAPIKey != "" {
		smsSender = notification.NewAfricasTalkingSender(
			config.AppConfig.ATUsername,
			config.AppConfig.ATAPIKey,
			config.AppConfig.ATSenderID,
		)
	}

	// Reminder queue. Only available with Redis; bookings simply skip
	// reminders otherwise.
	var reminderScheduler tasks.Scheduler
	if utils.RedisConfigured() {
		reminderScheduler = tasks.NewAsynqScheduler(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		workers.StartReminderWorker(smsSender)
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      repo,
		SMS:       smsSender,
		Reminders: reminderScheduler,
	}

	// Optional NLU and generative fallback.
	var detector intelligence.IntentDetector
	if config.AppConfig.DialogflowProjectID != "" {
		d, err := intelligence.NewDialogflowDetector(
			context.Background(),
			config.AppConfig.DialogflowProjectID,
			config.AppConfig.DialogflowLanguageCode,
			config.AppConfig.GoogleServiceAccountFile,
		)
		if err != nil {
			logger.Sugar().Warnf("main: Dialogflow unavailable, continuing with rule-based engine: %v", err)
		} else {
			detector = d
			defer d.Close()
		}
	}

	var responder intelligence.Responder
	if config.AppConfig.GeminiAPIKey != "" {
		r, err := intelligence.NewGeminiResponder(
			context.Background(),
			config.AppConfig.GeminiAPIKey,
			config.AppConfig.GeminiModel,
		)
		if err != nil {
			logger.Sugar().Warnf("main: Gemini unavailable, fallback responses stay canned: %v", err)
		} else {
			responder = r
		}
	}

	assistantService := &assistant.DefaultAssistantService{
		Engine:    dialogue.NewEngine(dialogue.NewCatalog()),
		Sessions:  sessionStore,
		Bookings:  bookingService,
		Detector:  detector,
		Responder: responder,
	}

	utils.StartHealthMonitor(utils.SessionCacheClient, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		ProcessMessageHandler: handlers.ProcessMessageHandler(assistantService),
		TranscribeHandler:     handlers.TranscribeHandler,

		CreateSessionHandler: handlers.CreateSessionHandler(sessionStore),
		GetSessionHandler:    handlers.GetSessionHandler(sessionStore),
		DeleteSessionHandler: handlers.DeleteSessionHandler(sessionStore),

		CreateBookingHandler: handlers.CreateBookingHandler(bookingService),
		GetBookingHandler:    handlers.GetBookingHandler(bookingService),
		ListBookingsHandler:  handlers.ListBookingsHandler(bookingService),
		UpdateBookingHandler: handlers.UpdateBookingHandler(bookingService),
		CancelBookingHandler: handlers.CancelBookingHandler(bookingService),
		AvailabilityHandler:  handlers.AvailabilityHandler(bookingService),

		ListServicesHandler: handlers.ListServicesHandler(bookingService),
		GetServiceHandler:   handlers.GetServiceHandler(bookingService),
	}

	routes.RegisterRoutes(router, handlerBundle)

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
