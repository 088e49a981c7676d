package user

import (
	"context"

	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
)

type ListUsersUseCase struct {
	userRepo user.Repository
}

func NewListUsersUseCase(repo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: repo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*user.User, error) {
	ctx, span := tracer.Start(ctx, "ListUsers")
	defer span.End()

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list users", err)
	}
	return users, nil
}
