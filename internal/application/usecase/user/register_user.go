package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
	"github.com/khoahotran/profile-api/pkg/auth"
	"github.com/khoahotran/profile-api/pkg/gravatar"
	"github.com/khoahotran/profile-api/pkg/logger"
)

type RegisterUserUseCase struct {
	userRepo  user.Repository
	tokens    service.TokenIssuer
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewRegisterUserUseCase(repo user.Repository, tokens service.TokenIssuer, pub service.EventPublisher, log logger.Logger) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:  repo,
		tokens:    tokens,
		publisher: pub,
		logger:    log,
	}
}

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterUserOutput struct {
	User  *user.User
	Token string
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	ctx, span := tracer.Start(ctx, "RegisterUser")
	defer span.End()

	existing, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		err := apperror.NewConflict("User", "email", input.Email)
		span.RecordError(err)
		return nil, err
	}
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up user by email", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       gravatar.URL(input.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("user validation failed", err)
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		span.RecordError(err)
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperror.NewConflict("User", "email", input.Email)
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}

	token, err := uc.tokens.IssueToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to issue token", err, zap.String("user_id", u.ID.String()))
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to issue token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	publishInBackground(uc.publisher, uc.logger, service.UserEventRegistered, u.ID, u.Email)

	return &RegisterUserOutput{User: u, Token: token}, nil
}
