package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/adapters/persistence"
	"github.com/khoahotran/profile-api/internal/application/service"
	userUC "github.com/khoahotran/profile-api/internal/application/usecase/user"
	"github.com/khoahotran/profile-api/internal/config"
	"github.com/khoahotran/profile-api/pkg/auth"
	"github.com/khoahotran/profile-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	name := os.Getenv("SEED_NAME")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if name == "" || email == "" || password == "" {
		log.Fatal("SEED_NAME, SEED_EMAIL and SEED_PASSWORD must be set", nil)
	}

	pool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	repo := persistence.NewPostgresUserRepo(pool, log)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	register := userUC.NewRegisterUserUseCase(repo, jwtSvc, service.NopPublisher{}, log)

	out, err := register.Execute(context.Background(), userUC.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Fatal("cannot add user", err, zap.String("email", email))
	}

	fmt.Printf("added user '%s' (%s)\ntoken: %s\n", email, out.User.ID, out.Token)
}
