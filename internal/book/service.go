package book

import (
	"context"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const recentLimit = 4

type Service interface {
	Create(ctx context.Context, actor auth.Identity, in Input) (Book, error)
	Update(ctx context.Context, actor auth.Identity, id string, in UpdateInput) (Book, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
	List(ctx context.Context) ([]Book, error)
	ListRecent(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Book, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, in Input) (Book, error) {
	if !actor.IsAdmin() {
		logger.FromCtx(ctx).Info("non-admin tried to add book",
			zap.String("layer", "service"),
			zap.String("method", "Create"),
		)
		return Book{}, ErrAdminRequired
	}
	if err := in.validate(); err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, in)
}

func (s *service) Update(ctx context.Context, actor auth.Identity, id string, in UpdateInput) (Book, error) {
	if !actor.IsAdmin() {
		return Book{}, ErrAdminRequired
	}
	id, ok := utils.CanonicalUUID(id)
	if !ok {
		return Book{}, ErrBookNotFound
	}
	if err := in.validate(); err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	id, ok := utils.CanonicalUUID(id)
	if !ok {
		return ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

func (s *service) ListRecent(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

func (s *service) Get(ctx context.Context, id string) (Book, error) {
	id, ok := utils.CanonicalUUID(id)
	if !ok {
		return Book{}, ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetByIDs skips ids that are not UUIDs; they can never resolve. The map is
// keyed by canonical id.
func (s *service) GetByIDs(ctx context.Context, ids []string) (map[string]Book, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, ok := utils.CanonicalUUID(id); ok {
			valid = append(valid, c)
		}
	}
	return s.repo.GetByIDs(ctx, valid)
}
