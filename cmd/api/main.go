package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/brubakerjm/etams/internal/api/http"
	"github.com/brubakerjm/etams/internal/api/http/handlers"
	"github.com/brubakerjm/etams/internal/auth"
	"github.com/brubakerjm/etams/internal/config"
	"github.com/brubakerjm/etams/internal/events"
	"github.com/brubakerjm/etams/internal/observability"
	"github.com/brubakerjm/etams/internal/persistence"
	"github.com/brubakerjm/etams/internal/repository"
	"github.com/brubakerjm/etams/internal/service"
	"github.com/brubakerjm/etams/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	limiter := auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, employeeRepo, limiter)
	employeeService := service.NewEmployeeService(employeeRepo, taskRepo, cfg.Auth.BcryptCost)
	taskService := service.NewTaskService(taskRepo, employeeRepo, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Docs:           handlers.NewDocsHandler(cfg.App.Name, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Tasks:          handlers.NewTasksHandler(taskService),
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
