package book

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const bookColumns = `id, url, title, author, price, "desc", language, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, in Input) (Book, error)
	Update(ctx context.Context, id string, in UpdateInput) (Book, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Book, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Book, error)
	List(ctx context.Context) ([]Book, error)
	ListRecent(ctx context.Context, limit int) ([]Book, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (Book, error) {
	var b Book
	err := s.Scan(&b.ID, &b.URL, &b.Title, &b.Author, &b.Price, &b.Desc, &b.Language, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *repository) Create(ctx context.Context, in Input) (Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	b, err := scanBook(r.db.QueryRowContext(ctx, `
		INSERT INTO books (url, title, author, price, "desc", language)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+bookColumns,
		in.URL, in.Title, in.Author, in.Price, in.Desc, in.Language,
	))
	if err != nil {
		log.Error("failed to insert book", zap.Error(err))
		return Book{}, err
	}

	log.Info("book created", zap.String("book_id", b.ID))
	return b, nil
}

func (r *repository) Update(ctx context.Context, id string, in UpdateInput) (Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("book_id", id),
	)

	// COALESCE keeps the stored value for nil inputs
	b, err := scanBook(r.db.QueryRowContext(ctx, `
		UPDATE books
		SET url = COALESCE($2, url),
			title = COALESCE($3, title),
			author = COALESCE($4, author),
			price = COALESCE($5, price),
			"desc" = COALESCE($6, "desc"),
			language = COALESCE($7, language),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookColumns,
		id, in.URL, in.Title, in.Author, in.Price, in.Desc, in.Language,
	))
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("book not found")
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		log.Error("failed to update book", zap.Error(err))
		return Book{}, err
	}

	log.Info("book updated")
	return b, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.String("book_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete book", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}

	log.Info("book deleted")
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get book",
			zap.String("layer", "repository"),
			zap.String("book_id", id),
			zap.Error(err),
		)
		return Book{}, err
	}
	return b, nil
}

// GetByIDs returns the books that exist among ids, keyed by id.
func (r *repository) GetByIDs(ctx context.Context, ids []string) (map[string]Book, error) {
	out := make(map[string]Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ANY($1)`, pq.Array(ids),
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get books by ids",
			zap.String("layer", "repository"),
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out[b.ID] = b
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at DESC`)
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *repository) query(ctx context.Context, q string, args ...any) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list books",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
