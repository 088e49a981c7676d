package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
)

type GetUserUseCase struct {
	userRepo user.Repository
}

func NewGetUserUseCase(repo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: repo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uuid.UUID) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "GetUser")
	defer span.End()

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to get user", err)
	}
	return u, nil
}
