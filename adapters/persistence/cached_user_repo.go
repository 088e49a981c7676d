package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/logger"
)

const userCachePrefix = "user:"

// cachedUser mirrors user.User including the hash, which the domain type
// keeps out of its JSON form.
type cachedUser struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// cachedUserRepo serves FindByID from Redis and drops the entry before and
// after every write to that id. The second drop clears a row that a
// concurrent FindByID read before the write and cached during it. Redis errors never fail a request; the wrapped repository
// stays the source of truth.
type cachedUserRepo struct {
	next   user.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedUserRepo(next user.Repository, rdb *redis.Client, ttl time.Duration, log logger.Logger) user.Repository {
	return &cachedUserRepo{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func cacheKey(id uuid.UUID) string {
	return userCachePrefix + id.String()
}

func (r *cachedUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	raw, err := r.rdb.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var c cachedUser
		if err := json.Unmarshal(raw, &c); err == nil {
			return &user.User{
				ID:           c.ID,
				Name:         c.Name,
				Email:        c.Email,
				Avatar:       c.Avatar,
				PasswordHash: c.PasswordHash,
				CreatedAt:    c.CreatedAt,
			}, nil
		}
		r.logger.Warn("Dropping unreadable cache entry", zap.String("user_id", id.String()))
		r.invalidate(ctx, id)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Redis get failed", zap.String("user_id", id.String()), zap.Error(err))
	}

	u, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *cachedUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *cachedUserRepo) List(ctx context.Context) ([]*user.User, error) {
	return r.next.List(ctx)
}

func (r *cachedUserRepo) Create(ctx context.Context, u *user.User) error {
	return r.next.Create(ctx, u)
}

func (r *cachedUserRepo) ReplaceFields(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*user.User, error) {
	r.invalidate(ctx, id)
	u, err := r.next.ReplaceFields(ctx, id, name, email, passwordHash)
	r.invalidate(ctx, id)
	return u, err
}

func (r *cachedUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.invalidate(ctx, id)
	err := r.next.Delete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *cachedUserRepo) store(ctx context.Context, u *user.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Avatar:       u.Avatar,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, cacheKey(u.ID), raw, r.ttl).Err(); err != nil {
		r.logger.Warn("Redis set failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}
}

func (r *cachedUserRepo) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.logger.Warn("Redis del failed", zap.String("user_id", id.String()), zap.Error(err))
	}
}
