package lists

import (
	"context"
	"slices"
	"time"

	"bookstore-be/internal/book"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/metrics"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const (
	maxAttempts = 5
	backoffStep = 10 * time.Millisecond
)

// BookLookup resolves catalog references held in favourites and cart.
type BookLookup interface {
	Get(ctx context.Context, id string) (book.Book, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]book.Book, error)
}

type Service interface {
	Add(ctx context.Context, kind Kind, userID, refID string) (Result, error)
	Remove(ctx context.Context, kind Kind, userID, refID string) (Result, error)
	Get(ctx context.Context, kind Kind, userID string) ([]book.Book, error)
}

type service struct {
	repo  Repository
	books BookLookup
	sleep func(ctx context.Context, d time.Duration) error
}

func NewService(repo Repository, books BookLookup) Service {
	return &service{repo: repo, books: books, sleep: sleepCtx}
}

func (s *service) Add(ctx context.Context, kind Kind, userID, refID string) (Result, error) {
	userID, refID, err := validate(kind, userID, refID)
	if err != nil {
		return Result{}, err
	}

	if kind.holdsBooks() {
		// user first, then book
		if _, _, err := s.repo.GetList(ctx, userID, kind); err != nil {
			return Result{}, err
		}
		if _, err := s.books.Get(ctx, refID); err != nil {
			return Result{}, err
		}
	}

	return s.mutate(ctx, kind, userID, func(ids []string) ([]string, bool) {
		if slices.Contains(ids, refID) {
			return ids, false
		}
		next := make([]string, 0, len(ids)+1)
		next = append(next, ids...)
		return append(next, refID), true
	})
}

func (s *service) Remove(ctx context.Context, kind Kind, userID, refID string) (Result, error) {
	userID, refID, err := validate(kind, userID, refID)
	if err != nil {
		return Result{}, err
	}

	res, err := s.mutate(ctx, kind, userID, func(ids []string) ([]string, bool) {
		if !slices.Contains(ids, refID) {
			return ids, false
		}
		next := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != refID {
				next = append(next, id)
			}
		}
		return next, true
	})
	if err != nil {
		return Result{}, err
	}
	// a changed remove means the reference was there
	res.Present = res.Changed
	return res, nil
}

// Get returns the books of a list, most recently added first. References to
// books that no longer exist are skipped.
func (s *service) Get(ctx context.Context, kind Kind, userID string) ([]book.Book, error) {
	if !kind.holdsBooks() {
		return nil, ErrUnknownList
	}
	userID, ok := utils.CanonicalUUID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	ids, _, err := s.repo.GetList(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	found, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]book.Book, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if b, ok := found[ids[i]]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// mutate runs a read-compute-swap cycle on one list, retrying on version
// conflicts. fn returns the new list and whether it differs.
func (s *service) mutate(ctx context.Context, kind Kind, userID string, fn func([]string) ([]string, bool)) (Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("list", string(kind)),
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		ids, version, err := s.repo.GetList(ctx, userID, kind)
		if err != nil {
			return Result{}, err
		}

		next, changed := fn(ids)
		if !changed {
			return Result{Present: true, Changed: false, Items: ids}, nil
		}

		ok, err := s.repo.SwapList(ctx, userID, kind, next, version)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return Result{Present: false, Changed: true, Items: next}, nil
		}

		metrics.RecordListConflict(string(kind))
		log.Debug("list version conflict, retrying", zap.Int("attempt", attempt+1))

		if err := s.sleep(ctx, time.Duration(attempt+1)*backoffStep); err != nil {
			return Result{}, err
		}
	}

	log.Warn("list update gave up after conflicts", zap.Int("attempts", maxAttempts))
	return Result{}, ErrTooManyConflicts
}

// validate checks the list kind and returns both ids in canonical form, the
// form list columns hold them in.
func validate(kind Kind, userID, refID string) (string, string, error) {
	if _, ok := kind.column(); !ok {
		return "", "", ErrUnknownList
	}
	user, ok := utils.CanonicalUUID(userID)
	if !ok {
		return "", "", ErrUserNotFound
	}
	ref, ok := utils.CanonicalUUID(refID)
	if !ok {
		return "", "", ErrInvalidID
	}
	return user, ref, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
