package order

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

const orderColumns = `id, user_id, book_id, status, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, userID, bookID string, status Status) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error)
	ListAll(ctx context.Context) ([]AdminEntry, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanOrder(row *sql.Row) (Order, error) {
	var o Order
	var status string
	err := row.Scan(&o.ID, &o.UserID, &o.BookID, &status, &o.CreatedAt, &o.UpdatedAt)
	o.Status = Status(status)
	return o, err
}

func (r *repository) Create(ctx context.Context, userID, bookID string, status Status) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("book_id", bookID),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, book_id, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns,
		userID, bookID, string(status),
	))
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return Order{}, err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return Order{}, err
	}
	return o, nil
}

// bookCols scans the LEFT JOINed book columns, all NULL for a dangling book.
type bookCols struct {
	id, title, author, desc, url, language sql.NullString
	price                                  sql.NullFloat64
}

func (b *bookCols) dest() []any {
	return []any{&b.id, &b.title, &b.author, &b.price, &b.desc, &b.url, &b.language}
}

func (b *bookCols) summary() *BookSummary {
	if !b.id.Valid {
		return nil
	}
	return &BookSummary{
		ID:       b.id.String,
		Title:    b.title.String,
		Author:   b.author.String,
		Price:    b.price.Float64,
		Desc:     b.desc.String,
		URL:      b.url.String,
		Language: b.language.String,
	}
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.book_id, o.status, o.created_at, o.updated_at,
		       b.id, b.title, b.author, b.price, b."desc", b.url, b.language
		FROM orders o
		LEFT JOIN books b ON b.id = o.book_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`,
		userID,
	)
	if err != nil {
		log.Error("failed to query order history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var status string
		var b bookCols
		dest := append([]any{&e.ID, &e.UserID, &e.BookID, &status, &e.CreatedAt, &e.UpdatedAt}, b.dest()...)
		if err := rows.Scan(dest...); err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, err
		}
		e.Status = Status(status)
		e.Book = b.summary()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]AdminEntry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListAll"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.book_id, o.status, o.created_at, o.updated_at,
		       b.id, b.title, b.author, b.price, b."desc", b.url, b.language,
		       u.id, u.username, u.email, u.address, u.avatar
		FROM orders o
		LEFT JOIN books b ON b.id = o.book_id
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`,
	)
	if err != nil {
		log.Error("failed to query all orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []AdminEntry
	for rows.Next() {
		var e AdminEntry
		var status string
		var b bookCols
		var uid, username, email, address, avatar sql.NullString

		dest := append([]any{&e.ID, &e.UserID, &e.BookID, &status, &e.CreatedAt, &e.UpdatedAt}, b.dest()...)
		dest = append(dest, &uid, &username, &email, &address, &avatar)
		if err := rows.Scan(dest...); err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, err
		}

		e.Status = Status(status)
		e.Book = b.summary()
		if uid.Valid {
			e.User = &UserSummary{
				ID:       uid.String,
				Username: username.String,
				Email:    email.String,
				Address:  address.String,
				Avatar:   avatar.String,
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns,
		string(status), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("order not found")
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return Order{}, err
	}

	log.Info("order status updated", zap.String("status", string(status)))
	return o, nil
}
