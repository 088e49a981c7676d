package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-api/internal/domain/user"
	"github.com/khoahotran/profile-api/pkg/logger"
)

const uniqueViolation = "23505"

var psqlUser = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"id", "name", "email", "avatar", "password_hash", "created_at"}

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error when scan user: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *postgresUserRepo) findOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := psqlUser.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user query: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *postgresUserRepo) List(ctx context.Context) ([]*user.User, error) {
	query, args, err := psqlUser.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error when query users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query, args, err := psqlUser.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.Avatar, u.PasswordHash, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("error when insert user: %w", err)
	}
	r.logger.Debug("User inserted", zap.String("user_id", u.ID.String()))
	return nil
}

func (r *postgresUserRepo) ReplaceFields(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*user.User, error) {
	query, args, err := psqlUser.Update("users").
		SetMap(map[string]any{
			"name":          name,
			"email":         email,
			"password_hash": passwordHash,
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, email, avatar, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psqlUser.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error when delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Debug("Delete matched no user", zap.String("user_id", id.String()))
	}
	return nil
}
