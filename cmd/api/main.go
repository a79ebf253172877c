package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/wellfood-service/internal/api/http"
	"github.com/spec-kit/wellfood-service/internal/api/http/handlers"
	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/config"
	"github.com/spec-kit/wellfood-service/internal/events"
	"github.com/spec-kit/wellfood-service/internal/observability"
	"github.com/spec-kit/wellfood-service/internal/persistence"
	"github.com/spec-kit/wellfood-service/internal/repository"
	"github.com/spec-kit/wellfood-service/internal/service"
	"github.com/spec-kit/wellfood-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == config.InsecureDevJWTSecret {
		logger.Warn("AUTH_JWT_SECRET not set; using the insecure development fallback")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoStore, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongoStore.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongoStore.Database(), logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	db := mongoStore.Database()
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	otpRepo := repository.NewOTPRepository(redisStore.Client)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		AdminRepo:  adminRepo,
		OTPRepo:    otpRepo,
		Dispatcher: dispatcher,
	})
	cartService := service.NewCartService(cartRepo)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orderRepo,
		CartRepo:   cartRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if admin, err := authService.SeedAdmin(ctx); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	} else if admin != nil {
		logger.Info("seed admin present", zap.String("email", admin.Email))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, adminRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongoStore, redisStore),
		Auth:           handlers.NewAuthHandler(authService),
		Cart:           handlers.NewCartHandler(cartService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Admin:          handlers.NewAdminHandler(authService, orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
