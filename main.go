// File: vibezone/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibezone/config"
	"vibezone/cron"
	"vibezone/database"
	"vibezone/database/repository"
	"vibezone/handlers"
	"vibezone/middleware"
	"vibezone/routes"
	"vibezone/services/booking"
	"vibezone/services/calendar"
	"vibezone/services/notification"
	"vibezone/services/tasks"
	"vibezone/services/verification"
	"vibezone/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient := database.Connect()
	db := mongoClient.Database(config.AppConfig.DatabaseName)
	webhookCache := utils.NewWebhookCacheClient()

	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := repository.NewMongoBookingRepo(db)
	rateRepo := repository.NewMongoRateLimitRepo(db)
	verificationRepo := repository.NewMongoVerificationRepo(db)
	reminderRepo := repository.NewMongoReminderRepo(db)

	// outbound integrations.
	var emailSender notification.EmailSender
	if config.AppConfig.EmailAPIKey != "" {
		emailSender = notification.NewHTTPEmailSender(
			config.AppConfig.EmailEndpoint,
			config.AppConfig.EmailAPIKey,
			config.AppConfig.EmailFrom,
			logger,
		)
	} else {
		logger.Warn("No email API key configured, logging emails instead of sending")
		emailSender = &notification.LogEmailSender{Logger: logger}
	}

	var calendarSvc calendar.CalendarService
	if config.AppConfig.GoogleCredentialsJSON != "" {
		gcal, err := calendar.NewGoogleCalendarService(
			context.Background(),
			config.AppConfig.GoogleCredentialsJSON,
			config.AppConfig.GoogleCalendarID,
			logger,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
		}
		calendarSvc = gcal
	} else {
		logger.Warn("No calendar credentials configured, calendar sync disabled")
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	scheduler := tasks.NewScheduler(asynqClient)

	// services.
	verificationService := &verification.DefaultVerificationService{
		Repo:        verificationRepo,
		Email:       emailSender,
		CodeTTL:     time.Duration(config.AppConfig.VerificationTTLMin) * time.Minute,
		MaxPerEmail: 3,
		Window:      10 * time.Minute,
		Logger:      logger,
	}

	policy := booking.DefaultPolicy(config.AppConfig.OperatorEmail)
	policy.HoldWindow = time.Duration(config.AppConfig.HoldWindowHours) * time.Hour
	policy.ReminderLead = time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
	policy.RateLimitWindow = time.Duration(config.AppConfig.RateLimitWindowMin) * time.Minute
	policy.RateLimitMax = config.AppConfig.RateLimitMax
	policy.RequireVerified = config.AppConfig.RequireVerified

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		RateRepo:     rateRepo,
		ReminderRepo: reminderRepo,
		Verifier:     verificationService,
		Payments: &booking.StripeProvider{
			SuccessURL: config.AppConfig.CheckoutSuccessURL,
			CancelURL:  config.AppConfig.CheckoutCancelURL,
		},
		Email:     emailSender,
		Calendar:  calendarSvc,
		Scheduler: scheduler,
		Policy:    policy,
		Logger:    logger,
	}

	// background workers.
	cron.InitReminderWorker(bookingRepo, reminderRepo, emailSender)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go cron.StartSweepCron(sweepCtx, bookingService,
		time.Duration(config.AppConfig.SweepIntervalMin)*time.Minute)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Webhook: handlers.NewWebhookHandler(
			bookingService, config.AppConfig.StripeWebhookSecret, webhookCache, logger),
		Sweep:        handlers.NewSweepHandler(bookingService, config.AppConfig.SweepSecret, logger),
		Verification: handlers.NewVerificationHandler(verificationService, logger),
		Admin:        handlers.NewAdminHandler(bookingService, logger),
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

	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect mongo: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
