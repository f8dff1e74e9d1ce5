package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asst/config"
	"asst/cron"
	"asst/database"
	"asst/database/repository"
	"asst/handlers"
	"asst/routes"
	"asst/services/booking"
	"asst/services/catalog"
	"asst/services/events"
	"asst/services/notification"
	"asst/services/payment"
	"asst/services/staff"
	"asst/services/storage"
	"asst/services/user"
	"asst/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterGinValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	defer database.CloseDB() //nolint:errcheck
	if err := utils.InitCache(); err != nil {
		logger.Fatal("main: redis unavailable", zap.Error(err))
	}
	defer utils.CloseCache()

	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	db := database.DB()
	catalogRepo := repository.NewMongoCatalogRepo(db)
	bookedRepo := repository.NewMongoBookedRepo(db)
	userRepo := repository.NewMongoUserRepository(db)

	// infrastructure.
	var images storage.ImageStore
	if store, err := storage.NewCloudinaryImageStore(config.AppConfig.CloudinaryURL); err != nil {
		logger.Warn("main: image uploads disabled", zap.Error(err))
	} else {
		images = store
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := config.AppConfig.Brokers(); len(brokers) > 0 {
		kp, err := events.NewKafkaPublisher(brokers, config.AppConfig.BookingEventsTopic)
		if err != nil {
			logger.Fatal("main: failed to create kafka publisher", zap.Error(err))
		}
		publisher = kp
	}
	defer publisher.Close() //nolint:errcheck

	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()

	mailer := notification.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
	)
	emailWorker := cron.NewEmailWorker(mailer)
	if err := emailWorker.Start(); err != nil {
		logger.Fatal("main: email worker failed", zap.Error(err))
	}
	defer emailWorker.Shutdown()

	gateway := payment.NewStripeGateway(config.AppConfig.StripeSigningSecret)

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Booked: bookedRepo,
		Images: images,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:   catalogRepo,
		Images: images,
	}
	bookingService := &booking.DefaultBookingService{
		Catalog:  catalogRepo,
		Booked:   bookedRepo,
		Gateway:  gateway,
		Notifier: notification.NewQueuedBookingNotifier(queue, config.AppConfig.DefaultFromEmail),
		Events:   publisher,
		Ledger:   booking.NewRedisEventLedger(utils.GetCacheClient()),
		RootURL:  config.AppConfig.AppRootURL,
		Currency: config.AppConfig.Currency,
	}
	staffService := &staff.DefaultStaffService{
		Users:   userRepo,
		Booked:  bookedRepo,
		Gateway: gateway,
		Events:  publisher,
	}

	handlerBundle := &handlers.HandlerBundle{
		Auth:     userService,
		Services: handlers.NewServiceHandler(catalogService, bookingService),
		Booking:  handlers.NewBookingHandler(bookingService, config.AppConfig.StripePublishableKey),
		Users:    handlers.NewUserHandler(userService),
		Admin:    handlers.NewAdminHandler(catalogService, staffService),
		Workers:  handlers.NewWorkerHandler(staffService),
	}

	appCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	monitor := utils.NewHealthMonitor(time.Minute, map[string]utils.HealthCheck{
		"mongo": func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) },
		"redis": func(ctx context.Context) error { return utils.GetCacheClient().Ping(ctx).Err() },
	})
	monitor.Start(appCtx)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlerBundle, monitor, config.AppConfig.MaxRequestsPerMin)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
