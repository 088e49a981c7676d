package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/adapters/event"
	httpAdapter "github.com/khoahotran/profile-api/adapters/http"
	"github.com/khoahotran/profile-api/adapters/persistence"
	"github.com/khoahotran/profile-api/internal/application/service"
	userUC "github.com/khoahotran/profile-api/internal/application/usecase/user"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/auth"
	"github.com/khoahotran/profile-api/pkg/logger"
	"github.com/khoahotran/profile-api/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := persistence.RunMigrations(context.Background(), cfg.DB.DSN); err != nil {
			log.Fatal("Migration failed", err)
		}
		log.Info("Migrations applied")
		return
	}

	log.Info("Start Profile API Server...", zap.String("env", cfg.App.Env))

	shutdownTracer, err := tracing.NewTracerProvider(cfg, log, "profile-api")
	if err != nil {
		log.Fatal("Cannot init tracing", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Error("Tracer shutdown failed", err)
		}
	}()

	// Repositories
	userRepo, closeRepo := newUserRepo(cfg, log)
	defer closeRepo()

	// Events
	var publisher service.EventPublisher = service.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, log)
		if err != nil {
			log.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		log.Warn("No Kafka brokers configured, user events are dropped")
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := userUC.NewRegisterUserUseCase(userRepo, jwtSvc, publisher, log)
	listUseCase := userUC.NewListUsersUseCase(userRepo)
	getUseCase := userUC.NewGetUserUseCase(userRepo)
	updateUseCase := userUC.NewUpdateUserUseCase(userRepo, publisher, log)
	deleteUseCase := userUC.NewDeleteUserUseCase(userRepo, publisher, log)

	// HTTP
	userHandler := httpAdapter.NewUserHandler(registerUseCase, listUseCase, getUseCase, updateUseCase, deleteUseCase, log)
	router := httpAdapter.NewRouter(userHandler, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}
}

// newUserRepo picks the store from cfg.DB.Driver and puts the Redis cache in
// front of it when an address is configured.
func newUserRepo(cfg config.Config, log logger.Logger) (user.Repository, func()) {
	var (
		repo    user.Repository
		closers []func()
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory user store, data is lost on restart")
		repo = persistence.NewMemoryUserRepo()
	default:
		dbPool, err := persistence.NewPostgresPool(cfg, log)
		if err != nil {
			log.Fatal("Cannot connect Postgres", err)
		}
		closers = append(closers, dbPool.Close)
		repo = persistence.NewPostgresUserRepo(dbPool, log)
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, log)
		if err != nil {
			log.Fatal("Cannot connect Redis", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		repo = persistence.NewCachedUserRepo(repo, redisClient, cfg.Redis.TTL, log)
	}

	return repo, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
