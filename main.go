// File: fitbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitbook/config"
	"fitbook/cron"
	"fitbook/database"
	availabilityRepoPkg "fitbook/database/repository/availability"
	bookingRepoPkg "fitbook/database/repository/booking"
	monthlyRepoPkg "fitbook/database/repository/monthly"
	sessionRepoPkg "fitbook/database/repository/session"
	subscriptionRepoPkg "fitbook/database/repository/subscription"
	trainerRepoPkg "fitbook/database/repository/trainer"
	userRepoPkg "fitbook/database/repository/user"
	"fitbook/handlers"
	"fitbook/middleware"
	"fitbook/routes"
	"fitbook/services/booking"
	"fitbook/services/notification"
	"fitbook/services/schedule"
	"fitbook/services/subscription"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer utils.SyncLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	monthlyRepo := monthlyRepoPkg.NewMongoMonthlyRepo()
	trainerRepo := trainerRepoPkg.NewMongoTrainerRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	subscriptionRepo := subscriptionRepoPkg.NewMongoSubscriptionRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := availabilityRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := bookingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// Services.
	scheduleService := &schedule.DefaultScheduleService{
		Availability: availabilityRepo,
		Bookings:     bookingRepo,
		Monthly:      monthlyRepo,
		Cache:        utils.GetCacheClient(),
	}
	conflictChecker := &schedule.DefaultConflictChecker{
		Bookings:     bookingRepo,
		Monthly:      monthlyRepo,
		Availability: availabilityRepo,
	}

	queueClient := notification.NewQueueClient()
	defer queueClient.Close()

	bookingService := &booking.DefaultBookingService{
		Users:         userRepo,
		Trainers:      trainerRepo,
		Sessions:      sessionRepo,
		Subscriptions: subscriptionRepo,
		Bookings:      bookingRepo,
		Monthly:       monthlyRepo,
		Checker:       conflictChecker,
		Schedule:      scheduleService,
		Notifier:      queueClient,
	}

	subscriptionService := &subscription.DefaultSubscriptionService{
		Subscriptions:  subscriptionRepo,
		Sessions:       sessionRepo,
		Users:          userRepo,
		Bookings:       bookingService,
		BookingRecords: bookingRepo,
		Checker:        conflictChecker,
		Events:         subscription.NewEventLedger(utils.GetCacheClient()),

		AllowMonthlyCheckout: config.AppConfig.Features.MonthlyProducts,
	}

	// Background work: email worker and subscription lifecycle sweeps.
	emailSender := &notification.BookingEmailSender{
		Bookings: bookingRepo,
		Users:    userRepo,
		Trainers: trainerRepo,
		Mailer:   notification.NewSMTPMailer(),
	}
	cron.InitEmailWorker(emailSender)
	lifecycleCron := cron.StartLifecycleCron(subscriptionService)
	defer lifecycleCron.Stop()

	// Handlers.
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	trainerHandler := handlers.NewTrainerHandler(trainerRepo)
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	handlerBundle := &handlers.HandlerBundle{
		SetAvailabilityHandler:    scheduleHandler.SetAvailabilityHandler,
		GetAvailabilityHandler:    scheduleHandler.GetAvailabilityHandler,
		GetDaySlotsHandler:        scheduleHandler.GetDaySlotsHandler,
		GetMonthlyDaySlotsHandler: scheduleHandler.GetMonthlyDaySlotsHandler,
		ToggleSlotHandler:         scheduleHandler.ToggleSlotHandler,
		SetAllOverridesHandler:    scheduleHandler.SetAllOverridesHandler,

		CreateBookingHandler:        bookingHandler.CreateBookingHandler,
		CreateMonthlyBookingHandler: bookingHandler.CreateMonthlyBookingHandler,
		CancelMonthlyBookingHandler: bookingHandler.CancelMonthlyBookingHandler,
		CreateAdvanceBookingHandler: bookingHandler.CreateAdvanceBookingHandler,
		GetBookingHandler:           bookingHandler.GetBookingHandler,
		ListUserBookingsHandler:     bookingHandler.ListUserBookingsHandler,

		StartCheckoutHandler:      subscriptionHandler.StartCheckoutHandler,
		StripeWebhookHandler:      subscriptionHandler.StripeWebhookHandler,
		GetSubscriptionHandler:    subscriptionHandler.GetSubscriptionHandler,
		PauseSubscriptionHandler:  subscriptionHandler.PauseSubscriptionHandler,
		ResumeSubscriptionHandler: subscriptionHandler.ResumeSubscriptionHandler,
		CancelSubscriptionHandler: subscriptionHandler.CancelSubscriptionHandler,

		CreateTrainerHandler: trainerHandler.CreateTrainerHandler,
		GetTrainerHandler:    trainerHandler.GetTrainerHandler,
		ListTrainersHandler:  trainerHandler.ListTrainersHandler,
		UpdateTrainerHandler: trainerHandler.UpdateTrainerHandler,
		DeleteTrainerHandler: trainerHandler.DeleteTrainerHandler,

		CreateSessionHandler:       sessionHandler.CreateSessionHandler,
		GetSessionHandler:          sessionHandler.GetSessionHandler,
		ListTrainerSessionsHandler: sessionHandler.ListTrainerSessionsHandler,
		DeleteSessionHandler:       sessionHandler.DeleteSessionHandler,

		RegisterUserHandler: userHandler.RegisterUserHandler,
		GetUserHandler:      userHandler.GetUserHandler,

		MonthlyEnabled: config.AppConfig.Features.MonthlyBookings,
	}

	// Register routes with the assembled handler bundle.
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
