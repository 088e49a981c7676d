package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user email already exists")
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date"`
}

func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return errors.New("id is required")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// Repository stores user records. Lookups return ErrUserNotFound when no
// record matches; writes that would reuse another record's email return
// ErrDuplicateEmail.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, u *User) error
	ReplaceFields(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*User, error)
	// Delete succeeds whether or not a record with id existed.
	Delete(ctx context.Context, id uuid.UUID) error
}
