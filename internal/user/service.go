package user

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const (
	minUsernameLen = 4
	minPasswordLen = 5
)

type Service interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateAddress(ctx context.Context, userID, address string) (User, error)
}

type service struct {
	repo   Repository
	tokens auth.TokenIssuer
}

func NewService(repo Repository, tokens auth.TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	in.Username = strings.TrimSpace(in.Username)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	switch {
	case utf8.RuneCountInString(in.Username) < minUsernameLen:
		return User{}, ErrUsernameTooShort
	case utf8.RuneCountInString(in.Password) < minPasswordLen:
		return User{}, ErrPasswordTooShort
	case in.Email == "":
		return User{}, ErrEmailRequired
	case in.Address == "":
		return User{}, ErrAddressRequired
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Address:  in.Address,
		Avatar:   DefaultAvatar,
		Role:     auth.RoleUser,
	})
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", in.Email), zap.Error(err))
		}
		return User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", User{}, ErrCredentialsMissing
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("email not found")
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("password not match", zap.String("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{ID: u.ID, Role: u.Role})
	if err != nil {
		log.Error("failed to issue token", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	u.Password = ""
	return token, u, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if !utils.IsUUID(userID) {
		return Profile{}, ErrUserNotFound
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

func (s *service) UpdateAddress(ctx context.Context, userID, address string) (User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return User{}, ErrAddressRequired
	}
	if !utils.IsUUID(userID) {
		return User{}, ErrUserNotFound
	}
	return s.repo.UpdateAddress(ctx, userID, address)
}

func parseRole(s string) auth.Role {
	if r := auth.Role(s); r.Valid() {
		return r
	}
	return auth.RoleUser
}
