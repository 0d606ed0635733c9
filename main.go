// File: hireslot/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"hireslot/config"
	"hireslot/cron"
	"hireslot/database"
	bookingRepoPkg "hireslot/database/repository/booking"
	linkRepoPkg "hireslot/database/repository/bookinglink"
	templateRepoPkg "hireslot/database/repository/template"
	"hireslot/handlers"
	"hireslot/middleware"
	"hireslot/routes"
	"hireslot/services/availability"
	"hireslot/services/booking"
	"hireslot/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid time zone %q: %v", cfg.TimeZone, err)
	}

	ctx := context.Background()
	mongoClient, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	cacheClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cacheClient.Ping(pingCtx).Err(); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}

	// Repositories.
	templateRepo := templateRepoPkg.NewMongoTemplateRepo(mongoClient, cfg.MongoDatabase)
	linkRepo := linkRepoPkg.NewMongoLinkRepo(mongoClient, cfg.MongoDatabase)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(mongoClient, cfg.MongoDatabase)
	for name, ensure := range map[string]func(context.Context) error{
		"templates":     templateRepo.EnsureIndexes,
		"booking_links": linkRepo.EnsureIndexes,
		"bookings":      bookingRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// Services.
	engine := &availability.Engine{
		Templates: templateRepo,
		Links:     linkRepo,
		Bookings:  bookingRepo,
		Loc:       loc,
		Logger:    logger,
	}
	monthCache := &availability.MonthCache{
		Store:  availability.NewRedisCacheStore(cacheClient),
		Engine: engine,
		Logger: logger,
	}

	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpt)
	defer queueClient.Close()

	invalidator := &availability.Invalidator{
		Links:  linkRepo,
		Cache:  monthCache,
		Queue:  queueClient,
		Logger: logger,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:     bookingRepo,
		Availability: engine,
		Cache:        monthCache,
		Logger:       logger,
	}

	// Background cache re-warm worker.
	worker := cron.StartRefreshWorker(queueOpt, monthCache, logger)
	defer worker.Shutdown()

	// HTTP surface.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(120, logger))

	handler := &handlers.Handler{
		Bookings:     bookingService,
		Availability: engine,
		Cache:        monthCache,
		Templates:    templateRepo,
		Links:        linkRepo,
		Invalidator:  invalidator,
		Logger:       logger,
	}
	routes.RegisterRoutes(router, handler)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
