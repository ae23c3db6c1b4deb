package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "user_id", "book_id", "status", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders \(user_id, book_id, status\)`).
			WithArgs(userID, bookID1, "Order Placed").
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(orderID1, userID, bookID1, "Order Placed", now, now))

		o, err := repo.Create(ctx, userID, bookID1, StatusPlaced)
		require.NoError(t, err)
		assert.Equal(t, orderID1, o.ID)
		assert.Equal(t, StatusPlaced, o.Status)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, userID, bookID1, StatusPlaced)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs(orderID1).
		WillReturnRows(sqlmock.NewRows(orderCols))

	_, err = repo.GetByID(ctx, orderID1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := append(append([]string{}, orderCols...), "b_id", "title", "author", "price", "desc", "url", "language")
	rows := sqlmock.NewRows(cols).
		AddRow(orderID2, userID, bookID2, "Delivered", now, now,
			bookID2, "Two", "Author", 12.0, "Desc", "http://img", "English").
		AddRow(orderID1, userID, bookID1, "Order Placed", now.Add(-time.Hour), now.Add(-time.Hour),
			nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`LEFT JOIN books b ON b.id = o.book_id\s+WHERE o.user_id = \$1\s+ORDER BY o.created_at DESC`).
		WithArgs(userID).
		WillReturnRows(rows)

	entries, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, orderID2, entries[0].ID)
	require.NotNil(t, entries[0].Book)
	assert.Equal(t, "Two", entries[0].Book.Title)
	assert.Equal(t, 12.0, entries[0].Book.Price)
	assert.Equal(t, StatusDelivered, entries[0].Status)

	assert.Nil(t, entries[1].Book)
	assert.Equal(t, bookID1, entries[1].BookID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := append(append([]string{}, orderCols...),
		"b_id", "title", "author", "price", "desc", "url", "language",
		"u_id", "username", "email", "address", "avatar")
	rows := sqlmock.NewRows(cols).
		AddRow(orderID1, userID, bookID1, "Order Placed", now, now,
			bookID1, "One", "Author", 9.0, "Desc", "http://img", "English",
			userID, "john", "john@example.com", "1 Main St", "http://avatar")

	mock.ExpectQuery(`LEFT JOIN users u ON u.id = o.user_id\s+ORDER BY o.created_at DESC`).
		WillReturnRows(rows)

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "john", entries[0].User.Username)
	assert.Equal(t, "One", entries[0].Book.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE orders\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
			WithArgs("Delivered", orderID1).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(orderID1, userID, bookID1, "Delivered", now, now))

		o, err := repo.UpdateStatus(ctx, orderID1, StatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, StatusDelivered, o.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE orders`).
			WithArgs("Cancelled", orderID2).
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.UpdateStatus(ctx, orderID2, StatusCancelled)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
