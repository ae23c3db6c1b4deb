package order

import (
	"context"
	"fmt"
	"time"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/book"
	"bookstore-be/internal/events"
	"bookstore-be/internal/lists"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/metrics"
	"bookstore-be/internal/user"
	"bookstore-be/internal/utils"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type ListManager interface {
	Add(ctx context.Context, kind lists.Kind, userID, refID string) (lists.Result, error)
	Remove(ctx context.Context, kind lists.Kind, userID, refID string) (lists.Result, error)
}

type BookResolver interface {
	Get(ctx context.Context, id string) (book.Book, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (user.User, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, userID string, bookIDs []string) ([]ItemResult, error)
	Reconcile(ctx context.Context, userID, orderID string) (ItemResult, error)
	GetHistory(ctx context.Context, userID string) ([]HistoryEntry, error)
	ListAll(ctx context.Context, actor auth.Identity) ([]AdminEntry, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, orderID, status string) (Order, error)
}

type service struct {
	repo      Repository
	lists     ListManager
	books     BookResolver
	users     UserFinder
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, lm ListManager, books BookResolver, users UserFinder, pub events.Publisher) Service {
	if pub == nil {
		pub = events.NewNopPublisher()
	}
	return &service{
		repo:      repo,
		lists:     lm,
		books:     books,
		users:     users,
		publisher: pub,
		now:       time.Now,
	}
}

// PlaceOrder places one order per book, strictly in sequence. Every step is
// its own write and nothing is rolled back; the per-item results say how far
// each book got. The returned error combines every item failure.
func (s *service) PlaceOrder(ctx context.Context, userID string, bookIDs []string) ([]ItemResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	if len(bookIDs) == 0 {
		return nil, ErrEmptyOrder
	}
	canonical := make([]string, 0, len(bookIDs))
	for _, id := range bookIDs {
		c, ok := utils.CanonicalUUID(id)
		if !ok {
			return nil, ErrInvalidBookID
		}
		canonical = append(canonical, c)
	}
	userID, ok := utils.CanonicalUUID(userID)
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	results := make([]ItemResult, 0, len(bookIDs))
	var errs error

	for _, bookID := range canonical {
		res := s.placeItem(ctx, userID, bookID)
		results = append(results, res)

		if !res.OK() {
			metrics.RecordOrderItem(string(res.Stage))
			log.Warn("order item failed",
				zap.String("book_id", bookID),
				zap.String("order_id", res.OrderID),
				zap.String("stage", string(res.Stage)),
				zap.Error(res.Err),
			)
			errs = multierr.Append(errs, fmt.Errorf("book %s at %s: %w", bookID, res.Stage, res.Err))
			continue
		}
		metrics.RecordOrderItem("placed")
	}

	log.Info("place order finished",
		zap.Int("items", len(bookIDs)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return results, errs
}

func (s *service) placeItem(ctx context.Context, userID, bookID string) ItemResult {
	res := ItemResult{BookID: bookID}

	if _, err := s.books.Get(ctx, bookID); err != nil {
		return res.fail(StageResolveBook, err)
	}

	o, err := s.repo.Create(ctx, userID, bookID, StatusPlaced)
	if err != nil {
		return res.fail(StageCreate, err)
	}
	res.OrderID = o.ID

	res = s.finishItem(ctx, userID, res)

	// the order row exists from here on, whatever the list steps did
	s.publish(ctx, events.TopicOrderPlaced, o.ID, events.OrderPlaced{
		OrderID:  o.ID,
		UserID:   userID,
		BookID:   bookID,
		Status:   string(o.Status),
		PlacedAt: o.CreatedAt,
	})
	return res
}

// finishItem runs the two idempotent list steps for an existing order.
func (s *service) finishItem(ctx context.Context, userID string, res ItemResult) ItemResult {
	if _, err := s.lists.Add(ctx, lists.Orders, userID, res.OrderID); err != nil {
		return res.fail(StageLinkOrder, err)
	}
	if _, err := s.lists.Remove(ctx, lists.Cart, userID, res.BookID); err != nil {
		return res.fail(StageClearCart, err)
	}
	res.Stage = StageDone
	return res
}

func (r ItemResult) fail(stage Stage, err error) ItemResult {
	r.Stage = stage
	r.Err = err
	r.Error = err.Error()
	return r
}

// Reconcile re-runs the list steps of an order the caller owns.
func (s *service) Reconcile(ctx context.Context, userID, orderID string) (ItemResult, error) {
	orderID, ok := utils.CanonicalUUID(orderID)
	if !ok {
		return ItemResult{}, ErrOrderNotFound
	}
	userID, ok = utils.CanonicalUUID(userID)
	if !ok {
		return ItemResult{}, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return ItemResult{}, err
	}
	if o.UserID != userID {
		return ItemResult{}, ErrOrderNotFound
	}

	res := s.finishItem(ctx, userID, ItemResult{BookID: o.BookID, OrderID: o.ID})
	if !res.OK() {
		return res, fmt.Errorf("order %s at %s: %w", o.ID, res.Stage, res.Err)
	}

	logger.FromCtx(ctx).Info("order reconciled",
		zap.String("layer", "service"),
		zap.String("order_id", o.ID),
	)
	return res, nil
}

func (s *service) GetHistory(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if !utils.IsUUID(userID) {
		return nil, ErrNoOrders
	}
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoOrders
	}
	return entries, nil
}

func (s *service) ListAll(ctx context.Context, actor auth.Identity) ([]AdminEntry, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []AdminEntry{}
	}
	return entries, nil
}

// UpdateStatus lets an admin move an order to any status.
func (s *service) UpdateStatus(ctx context.Context, actor auth.Identity, orderID, raw string) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
	)

	if !actor.IsAdmin() {
		log.Info("non-admin status update refused", zap.String("order_id", orderID))
		return Order{}, ErrAdminOnly
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return Order{}, err
	}
	orderID, ok := utils.CanonicalUUID(orderID)
	if !ok {
		return Order{}, ErrOrderNotFound
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return Order{}, err
	}

	s.publish(ctx, events.TopicOrderStatusUpdated, o.ID, events.OrderStatusUpdated{
		OrderID:   o.ID,
		Status:    string(o.Status),
		UpdatedBy: actor.ID,
		UpdatedAt: s.now(),
	})
	return o, nil
}

func (s *service) publish(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.FromCtx(ctx).Warn("event publish failed",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
