package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database"
	bookingRepo "slotbook/database/repository/booking"
	providerRepo "slotbook/database/repository/provider"
	"slotbook/handlers"
	"slotbook/routes"
	"slotbook/services/booking"
	"slotbook/services/notification"
	"slotbook/services/provider"
	"slotbook/services/tasks"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	db := database.Database()
	provRepo := providerRepo.NewMongoProviderRepo(db)
	bookRepo := bookingRepo.NewMongoBookingRepo(db)
	if err := provRepo.EnsureIndexes(rootCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if n, err := bookRepo.NormalizeProviderIDs(rootCtx); err != nil {
		logger.Warn("Legacy provider ids left as strings", zap.Error(err))
	} else if n > 0 {
		logger.Info("Normalized legacy booking provider ids", zap.Int64("count", n))
	}
	if err := bookRepo.EnsureIndexes(rootCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// reminders.
	asynqClient := asynq.NewClient(cron.QueueRedisOpt())
	defer asynqClient.Close()
	reminders := tasks.NewAsynqReminderScheduler(asynqClient, config.ReminderLead(), config.Location())
	worker := cron.InitReminderWorker(bookRepo, notification.NewLogNotifier(logger))

	// services.
	providerService, err := provider.NewDefaultProviderService(provRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	bookingService := booking.NewDefaultBookingService(
		provRepo,
		bookRepo,
		booking.NewRedisLocker(cache, config.BookingLockTTL()),
		reminders,
		config.Location(),
		config.AppConfig.MaxRangeDays,
	)

	queueHealth := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueHealth.Close()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{cache, queueHealth}, database.MongoClient)

	hb := handlers.NewHandlerBundle(bookingService, providerService)
	router := routes.SetupRouter(hb, config.AppConfig.MaxRequestsPerMin)

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
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
