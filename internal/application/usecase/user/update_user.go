package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
	"github.com/khoahotran/profile-api/pkg/auth"
	"github.com/khoahotran/profile-api/pkg/logger"
)

// NoProfileMessage is returned when an update or lookup targets an id that
// does not resolve to a record.
const NoProfileMessage = "No profile found"

type UpdateUserUseCase struct {
	userRepo  user.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewUpdateUserUseCase(repo user.Repository, pub service.EventPublisher, log logger.Logger) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:  repo,
		publisher: pub,
		logger:    log,
	}
}

type UpdateUserInput struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
}

// Execute replaces name, email and password in one write. The password is
// always re-hashed, even when it did not change.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "UpdateUser")
	defer span.End()

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u, err := uc.userRepo.ReplaceFields(ctx, input.ID, input.Name, input.Email, hash)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return nil, apperror.NewAppError(apperror.ErrNotFound, NoProfileMessage,
				"user with id '"+input.ID.String()+"' was not found", nil)
		case errors.Is(err, user.ErrDuplicateEmail):
			return nil, apperror.NewConflict("User", "email", input.Email)
		}
		return nil, apperror.NewInternal("failed to update user", err)
	}

	publishInBackground(uc.publisher, uc.logger, service.UserEventUpdated, u.ID, u.Email)
	return u, nil
}
