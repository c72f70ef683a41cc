package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"reservo/config"
	"reservo/cron"
	"reservo/database"
	"reservo/database/repository"
	"reservo/handlers"
	"reservo/routes"
	"reservo/services/availability"
	"reservo/services/booking"
	"reservo/services/catalog"
	"reservo/services/dialogue"
	"reservo/services/session"
	"reservo/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := repository.NewMongoBookingRepo()

	// services.
	catalogRepo := catalog.NewDefaultRepository()
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)
	slotGen := &availability.Generator{}

	engine := dialogue.NewDefaultEngine(sessionStore, catalogRepo, slotGen, logger)

	reservationTTL := time.Duration(config.AppConfig.PaymentReservationMinutes) * time.Minute
	var payments booking.PaymentService
	if config.AppConfig.StripeKey != "" {
		payments = booking.NewStripePaymentService(logger, config.AppConfig.Currency, reservationTTL)
	}
	scheduler := cron.NewScheduler()

	finalizer := &booking.DefaultFinalizer{
		Repo:           bookingRepo,
		Sessions:       sessionStore,
		Catalog:        catalogRepo,
		Payments:       payments,
		Expiry:         scheduler,
		Logger:         logger,
		TenantID:       config.AppConfig.TenantID,
		RequirePayment: config.AppConfig.RequirePayment,
		ReservationTTL: reservationTTL,
	}

	// handlers.
	chatHandler := &handlers.ChatHandler{
		Engine:    engine,
		Finalizer: finalizer,
		Catalog:   catalogRepo,
		Logger:    logger,
	}
	bookingHandler := &handlers.BookingHandler{
		Finalizer: finalizer,
		Repo:      bookingRepo,
		Logger:    logger,
	}

	routes.RegisterRoutes(router, chatHandler, bookingHandler)

	// Background workers.
	cron.InitExpiryWorker(bookingRepo)
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

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
