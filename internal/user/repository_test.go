package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookstore-be/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	in := User{
		Username: "john",
		Email:    "john@example.com",
		Password: "hashed_password",
		Address:  "1 Main St",
		Avatar:   DefaultAvatar,
		Role:     auth.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(username, email, password, address, avatar, role\)`).
			WithArgs(in.Username, in.Email, in.Password, in.Address, in.Avatar, "user").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(testUserID, now, now))

		u, err := repo.Create(ctx, in)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, u.ID)
		assert.Equal(t, in.Email, u.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(ctx, in)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, in)
		assert.EqualError(t, err, "db error")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	email := "john@example.com"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password, role\s+FROM users\s+WHERE email = \$1`).
			WithArgs(email).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "role"}).
				AddRow(testUserID, "john", email, "hashed", "admin"))

		u, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, u.ID)
		assert.Equal(t, auth.RoleAdmin, u.Role)
	})

	t.Run("UnknownRoleFallsBackToUser", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password, role`).
			WithArgs(email).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "role"}).
				AddRow(testUserID, "john", email, "hashed", "superuser"))

		u, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleUser, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password, role`).
			WithArgs(email).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "role"}))

		_, err := repo.FindByEmail(ctx, email)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password, role`).
			WithArgs(email).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FindByEmail(ctx, email)
		assert.EqualError(t, err, "conn reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := []string{
		"id", "username", "email", "address", "avatar", "role",
		"favourites", "cart", "orders", "list_version", "created_at", "updated_at",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, address, avatar, role,\s+favourites, cart, orders, list_version`).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				testUserID, "john", "john@example.com", "1 Main St", DefaultAvatar, "user",
				"{aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa}", "{}", nil, int64(3), now, now,
			))

		u, err := repo.FindByID(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"}, u.Favourites)
		assert.Empty(t, u.Cart)
		assert.Nil(t, u.Orders)
		assert.Equal(t, int64(3), u.ListVersion)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, address, avatar, role`).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.FindByID(ctx, testUserID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateAddress(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users\s+SET address = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
			WithArgs("2 Side St", testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "address"}).
				AddRow(testUserID, "john", "2 Side St"))

		u, err := repo.UpdateAddress(ctx, testUserID, "2 Side St")
		assert.NoError(t, err)
		assert.Equal(t, "2 Side St", u.Address)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users`).
			WithArgs("2 Side St", testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "address"}))

		_, err := repo.UpdateAddress(ctx, testUserID, "2 Side St")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
