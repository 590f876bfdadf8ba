// File: belissimo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"belissimo/config"
	"belissimo/cron"
	"belissimo/database"
	bookingRepoPkg "belissimo/database/repository/booking"
	paymentRepoPkg "belissimo/database/repository/payment"
	serviceRepoPkg "belissimo/database/repository/service"
	"belissimo/handlers"
	"belissimo/routes"
	"belissimo/services/booking"
	ai "belissimo/services/intelligence"
	"belissimo/services/notification"
	"belissimo/services/payment"
	"belissimo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitMemoryCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	notifier := notification.NewAsynqNotificationService(queueOpt, config.AppConfig.ReminderLeadHours)
	defer notifier.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		ServiceRepo: serviceRepo,
		Notifier:    notifier,
		Limits: bookingRepoPkg.CapacityLimits{
			MaxSameSubService: config.AppConfig.MaxSameSubService,
			MaxTotalCapacity:  config.AppConfig.MaxTotalCapacity,
		},
		DefaultDuration: config.AppConfig.DefaultDurationMinutes,
	}

	paymentService := &payment.StripePaymentService{
		Payments:    paymentRepo,
		Bookings:    bookingService,
		ServiceRepo: serviceRepo,
	}

	memStore := ai.NewRedisMemoryStore(
		utils.GetMemoryCacheClient(),
		time.Duration(config.AppConfig.MemoryTTLMins)*time.Minute,
	)
	resolver := ai.NewIntentResolver(
		ai.NewOpenAIClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIModel),
		time.Duration(config.AppConfig.AITimeoutSecs)*time.Second,
		config.AppConfig.ReceptionistBiz,
	)
	aiService := &ai.DefaultAIService{
		Resolver: resolver,
		Memory:   memStore,
		Bookings: bookingService,
		Services: serviceRepo,
		Payments: paymentService,
	}

	handlers.BookingService = bookingService
	handlers.PaymentService = paymentService
	handlers.AIService = aiService
	handlers.ServiceRepo = serviceRepo

	routes.RegisterRoutes(router)

	// Background workers.
	cron.InitNotificationWorker(bookingRepo)
	utils.StartHealthMonitor(utils.GetMemoryCacheClient(), database.MongoClient)

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
