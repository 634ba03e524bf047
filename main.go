// File: consultify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultify/config"
	"consultify/cron"
	"consultify/database"
	advisorRepo "consultify/database/repository/advisor"
	bookingRepo "consultify/database/repository/booking"
	"consultify/handlers"
	"consultify/middleware"
	"consultify/routes"
	"consultify/services/notification"
	"consultify/services/scheduling"
	"consultify/services/tasks"
	"consultify/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	advisors := advisorRepo.NewMongoAdvisorRepo()

	// scheduling engine.
	calendar := scheduling.NewCalendar()
	availability := &scheduling.AvailabilityResolver{Repo: bookings, Logger: logger}
	links := &scheduling.SessionLinker{BaseURL: config.AppConfig.SessionBaseURL}
	idempotency := &scheduling.RedisIdempotencyStore{Client: utils.GetCacheClient()}

	admission := scheduling.NewAdmissionController(
		bookings, advisors, calendar, availability, links, idempotency, logger,
	)
	lifecycle := &scheduling.LifecycleManager{
		Repo:   bookings,
		Links:  links,
		Logger: logger,
	}

	// reminders.
	notifSvc := &notification.LogNotificationService{Logger: logger}
	cron.InitReminderWorker(notifSvc)
	reminders := tasks.NewReminderScheduler(logger)
	cron.StartReminderSweep(bookings, reminders, logger)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(admission, lifecycle, reminders, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(advisors, availability, calendar)
	adminHandler := handlers.NewAdminHandler(bookings, advisors, lifecycle, logger)

	handlerBundle := &routes.HandlerBundle{
		Booking:      bookingHandler,
		Availability: availabilityHandler,
		Admin:        adminHandler,
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
