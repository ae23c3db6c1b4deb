package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) (User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdateAddress(ctx context.Context, id, address string) (User, error) {
	args := m.Called(ctx, id, address)
	return args.Get(0).(User), args.Error(1)
}

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(id auth.Identity) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	valid := RegisterInput{
		Username: "johnny",
		Email:    " John@Example.com ",
		Password: "password123",
		Address:  "1 Main St",
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("Create", ctx, mock.MatchedBy(func(u User) bool {
			return u.Email == "john@example.com" &&
				u.Role == auth.RoleUser &&
				u.Avatar == DefaultAvatar &&
				CheckPasswordHash("password123", u.Password)
		})).Return(User{ID: testUserID, Email: "john@example.com"}, nil)

		u, err := svc.Register(ctx, valid)

		assert.NoError(t, err)
		assert.Equal(t, testUserID, u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *RegisterInput)
			want   error
		}{
			{"ShortUsername", func(in *RegisterInput) { in.Username = "abc" }, ErrUsernameTooShort},
			{"ShortPassword", func(in *RegisterInput) { in.Password = "1234" }, ErrPasswordTooShort},
			{"MissingEmail", func(in *RegisterInput) { in.Email = "  " }, ErrEmailRequired},
			{"MissingAddress", func(in *RegisterInput) { in.Address = "" }, ErrAddressRequired},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockRepository)
				svc := NewService(mockRepo, new(MockIssuer))

				in := valid
				tt.mutate(&in)
				_, err := svc.Register(ctx, in)

				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("Create", ctx, mock.Anything).Return(User{}, ErrEmailExists)

		_, err := svc.Register(ctx, valid)

		assert.ErrorIs(t, err, ErrEmailExists)
		assert.Equal(t, "Email is already registered.", apperror.Message(err))
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("Create", ctx, mock.Anything).Return(User{}, errors.New("db error"))

		_, err := svc.Register(ctx, valid)

		assert.EqualError(t, err, "db error")
		assert.Equal(t, http.StatusInternalServerError, apperror.Status(err))
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"
	hashed, err := HashPassword(password)
	require.NoError(t, err)

	stored := User{ID: testUserID, Email: email, Password: hashed, Role: auth.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		issuer := new(MockIssuer)
		svc := NewService(mockRepo, issuer)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)
		issuer.On("Issue", auth.Identity{ID: testUserID, Role: auth.RoleAdmin}).Return("signed", nil)

		token, u, err := svc.Login(ctx, "Test@Example.com", password)

		assert.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Empty(t, u.Password)
		assert.Equal(t, auth.RoleAdmin, u.Role)
		issuer.AssertExpectations(t)
	})

	t.Run("RealTokenService", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens, err := auth.NewTokenService("testsecret")
		require.NoError(t, err)
		svc := NewService(mockRepo, tokens)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		token, _, err := svc.Login(ctx, email, password)
		require.NoError(t, err)

		id, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, testUserID, id.ID)
		assert.True(t, id.IsAdmin())
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("FindByEmail", ctx, email).Return(User{}, ErrUserNotFound)

		_, _, err := svc.Login(ctx, email, password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		_, _, err := svc.Login(ctx, email, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockIssuer))

		_, _, err := svc.Login(ctx, "", password)
		assert.ErrorIs(t, err, ErrCredentialsMissing)
	})

	t.Run("IssueError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		issuer := new(MockIssuer)
		svc := NewService(mockRepo, issuer)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)
		issuer.On("Issue", mock.Anything).Return("", errors.New("sign failed"))

		_, _, err := svc.Login(ctx, email, password)
		assert.EqualError(t, err, "sign failed")
	})
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("FindByID", ctx, testUserID).Return(User{ID: testUserID, Username: "john", Password: "hash"}, nil)

		p, err := svc.GetProfile(ctx, testUserID)
		assert.NoError(t, err)
		assert.Equal(t, "john", p.Username)
		assert.Equal(t, []string{}, p.Cart)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("FindByID", ctx, testUserID).Return(User{}, ErrUserNotFound)

		_, err := svc.GetProfile(ctx, testUserID)
		assert.Equal(t, http.StatusNotFound, apperror.Status(err))
	})

	t.Run("NonUUID", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockIssuer))

		_, err := svc.GetProfile(ctx, "42")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_UpdateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		mockRepo.On("UpdateAddress", ctx, testUserID, "2 Side St").Return(User{ID: testUserID, Address: "2 Side St"}, nil)

		u, err := svc.UpdateAddress(ctx, testUserID, "  2 Side St ")
		assert.NoError(t, err)
		assert.Equal(t, "2 Side St", u.Address)
	})

	t.Run("Blank", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockIssuer))

		_, err := svc.UpdateAddress(ctx, testUserID, "   ")
		assert.ErrorIs(t, err, ErrAddressRequired)
		mockRepo.AssertNotCalled(t, "UpdateAddress", mock.Anything, mock.Anything, mock.Anything)
	})
}
