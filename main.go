package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskhive/config"
	"deskhive/cron"
	"deskhive/database"
	attendanceRepo "deskhive/database/repository/attendance"
	bookingRepo "deskhive/database/repository/booking"
	profileRepo "deskhive/database/repository/profile"
	seatRepo "deskhive/database/repository/seat"
	"deskhive/handlers"
	"deskhive/middleware"
	"deskhive/routes"
	"deskhive/services/booking"
	"deskhive/services/checkin"
	"deskhive/services/payment"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	zone, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	seats := seatRepo.NewMongoSeatRepo()
	attendance := attendanceRepo.NewMongoAttendanceRepo()
	profiles := profileRepo.NewMongoProfileRepo()

	for name, ensure := range map[string]func() error{
		"bookings":   bookings.EnsureIndexes,
		"seats":      seats.EnsureIndexes,
		"attendance": attendance.EnsureIndexes,
		"profiles":   profiles.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	gateway := payment.NewStripeGateway(logger, config.AppConfig.Currency)
	bookingService := &booking.DefaultBookingService{
		Repo:     bookings,
		Seats:    seats,
		Locks:    booking.NewRedisSeatLocker(utils.GetLockClient(), logger),
		Payments: gateway,
		Cache:    booking.NewRedisSeatMapCache(utils.GetCacheClient(), logger),
		Logger:   logger,
		Zone:     zone,
	}
	checkinService := &checkin.DefaultCheckinService{
		Bookings:   bookings,
		Attendance: attendance,
		Logger:     logger,
		Zone:       zone,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Seats:    handlers.NewSeatHandler(bookingService, seats, logger, zone),
		Payments: handlers.NewPaymentWebhookHandler(bookingService, logger),
		Checkin:  handlers.NewCheckinHandler(checkinService, logger),
		Admin:    handlers.NewAdminHandler(profiles, bookings, attendance, logger, zone),
		Profiles: profiles,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background expiry sweeper and health monitor.
	cron.InitSweepWorker(bookingService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()}, database.MongoClient)

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
