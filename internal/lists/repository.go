package lists

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// GetList returns the list and the user's current list version.
	GetList(ctx context.Context, userID string, kind Kind) ([]string, int64, error)
	// SwapList writes ids only if the version is still expected. False means
	// another writer got there first.
	SwapList(ctx context.Context, userID string, kind Kind, ids []string, expected int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetList(ctx context.Context, userID string, kind Kind) ([]string, int64, error) {
	col, ok := kind.column()
	if !ok {
		return nil, 0, ErrUnknownList
	}

	var ids []string
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT `+col+`, list_version FROM users WHERE id = $1`, userID,
	).Scan(pq.Array(&ids), &version)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to read list",
			zap.String("layer", "repository"),
			zap.String("method", "GetList"),
			zap.String("list", string(kind)),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return ids, version, nil
}

func (r *repository) SwapList(ctx context.Context, userID string, kind Kind, ids []string, expected int64) (bool, error) {
	col, ok := kind.column()
	if !ok {
		return false, ErrUnknownList
	}
	if ids == nil {
		ids = []string{}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET `+col+` = $1, list_version = list_version + 1, updated_at = NOW()
		WHERE id = $2 AND list_version = $3`,
		pq.Array(ids), userID, expected,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to swap list",
			zap.String("layer", "repository"),
			zap.String("method", "SwapList"),
			zap.String("list", string(kind)),
			zap.Error(err),
		)
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
