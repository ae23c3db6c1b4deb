package events

import (
	"context"
	"time"
)

const (
	TopicOrderPlaced        = "orders.placed"
	TopicOrderStatusUpdated = "orders.status_updated"
)

// Publisher ships domain events to the outside world. Delivery is best
// effort; callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	Close() error
}

type OrderPlaced struct {
	OrderID  string    `json:"order_id"`
	UserID   string    `json:"user_id"`
	BookID   string    `json:"book_id"`
	Status   string    `json:"status"`
	PlacedAt time.Time `json:"placed_at"`
}

type OrderStatusUpdated struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (nopPublisher) Close() error { return nil }
