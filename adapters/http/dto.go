package http

import (
	"time"

	"github.com/khoahotran/profile-api/internal/domain/user"
)

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

// UserDTO is the wire form of a user. Password carries the stored bcrypt
// hash, never the plaintext.
type UserDTO struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	Password string    `json:"password"`
	Date     time.Time `json:"date"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Password: u.PasswordHash,
		Date:     u.CreatedAt,
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
