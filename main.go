// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campsite/bookingapi"
	"campsite/config"
	"campsite/cron"
	"campsite/database"
	"campsite/handlers"
	"campsite/middleware"
	"campsite/routes"
	"campsite/services/aftersales"
	"campsite/services/availability"
	"campsite/services/payment"
	"campsite/services/reservation"
	"campsite/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.SessionMiddleware())

	// Remote booking API client.
	apiClient := bookingapi.NewClient(
		config.AppConfig.BookingAPIBaseURL,
		config.AppConfig.BookingAPIKey,
		config.AppConfig.BookingAPITimeout,
		logger,
	)

	// Snapshot stores.
	reservationKV := database.NewRedisKV(utils.GetReservationCacheClient())
	refundKV := database.NewRedisKV(utils.GetRefundCacheClient())
	rescheduleKV := database.NewRedisKV(utils.GetRescheduleCacheClient())

	sessionStore := reservation.NewSessionStore(reservationKV, config.AppConfig.SnapshotTTL, logger)

	// services.
	availabilitySvc := availability.NewAvailabilityService(apiClient, logger)
	reservationSvc := reservation.NewReservationService(sessionStore, availabilitySvc, apiClient, logger)
	orchestrator := payment.NewOrchestrator(apiClient, sessionStore, logger)
	refundFlow := aftersales.NewRefundFlow(apiClient, refundKV, config.AppConfig.SnapshotTTL, logger)
	rescheduleFlow := aftersales.NewRescheduleFlow(apiClient, rescheduleKV, config.AppConfig.SnapshotTTL, logger)

	paymentHandler := handlers.NewPaymentHandler(orchestrator, sessionStore, logger)
	paymentHandler.PollInterval = config.AppConfig.PaymentPollInterval
	paymentHandler.PollMaxAttempts = config.AppConfig.PaymentPollMaxAttempts

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilitySvc, logger),
		Reservation:  handlers.NewReservationHandler(reservationSvc, sessionStore, orchestrator, logger),
		Payment:      paymentHandler,
		Refund:       handlers.NewRefundHandler(refundFlow, logger),
		Reschedule:   handlers.NewRescheduleHandler(rescheduleFlow, logger),
		Content:      handlers.NewContentHandler(apiClient, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background upkeep.
	janitor := cron.StartJanitor(sessionStore, reservationKV, logger)
	defer janitor.Stop()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetReservationCacheClient(),
		utils.GetRefundCacheClient(),
		utils.GetRescheduleCacheClient(),
	}, apiClient)

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

	// A poll left running would outlive the UI it belongs to.
	orchestrator.StopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
