package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-api/internal/application/service"
	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
	"github.com/khoahotran/profile-api/pkg/logger"
)

type DeleteUserUseCase struct {
	userRepo  user.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewDeleteUserUseCase(repo user.Repository, pub service.EventPublisher, log logger.Logger) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:  repo,
		publisher: pub,
		logger:    log,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteUser")
	defer span.End()

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to delete user", err)
	}

	publishInBackground(uc.publisher, uc.logger, service.UserEventDeleted, id, "")
	return nil
}
