package user

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pqUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateAddress(ctx context.Context, id, address string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, address, avatar, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.Password, u.Address, u.Avatar, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			log.Info("email already registered", zap.String("email", u.Email))
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, role
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &role)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by email",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return User{}, err
	}

	u.Role = parseRole(role)
	return u, nil
}

// FindByID loads the full user row including its reference lists.
func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FindByID"),
		zap.String("user_id", id),
	)

	var u User
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, address, avatar, role,
		       favourites, cart, orders, list_version, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.Address, &u.Avatar, &role,
		pq.Array(&u.Favourites), pq.Array(&u.Cart), pq.Array(&u.Orders),
		&u.ListVersion, &u.CreatedAt, &u.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		log.Info("user not found")
		return User{}, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to scan user", zap.Error(err))
		return User{}, err
	}

	u.Role = parseRole(role)
	return u, nil
}

func (r *repository) UpdateAddress(ctx context.Context, id, address string) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateAddress"),
		zap.String("user_id", id),
	)

	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET address = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, username, address`,
		address, id,
	).Scan(&u.ID, &u.Username, &u.Address)

	if errors.Is(err, sql.ErrNoRows) {
		log.Info("user not found")
		return User{}, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to update address", zap.Error(err))
		return User{}, err
	}

	log.Info("address updated")
	return u, nil
}
