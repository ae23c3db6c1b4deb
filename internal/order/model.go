package order

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPlaced         Status = "Order Placed"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPlaced, StatusOutForDelivery, StatusDelivered, StatusCancelled}

// ParseStatus matches case-insensitively and accepts the "Canceled" spelling.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrStatusRequired
	}
	if strings.EqualFold(raw, "canceled") {
		return StatusCancelled, nil
	}
	for _, s := range Statuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

type Order struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	BookID    string    `json:"book"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookSummary struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Desc     string  `json:"desc"`
	URL      string  `json:"url"`
	Language string  `json:"language"`
}

type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
}

// HistoryEntry is an order of one user with its book resolved. Book is nil
// when the book has since been deleted.
type HistoryEntry struct {
	ID        string       `json:"_id"`
	UserID    string       `json:"user"`
	BookID    string       `json:"bookId"`
	Book      *BookSummary `json:"book"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type AdminEntry struct {
	ID        string       `json:"_id"`
	UserID    string       `json:"userId"`
	User      *UserSummary `json:"user"`
	BookID    string       `json:"bookId"`
	Book      *BookSummary `json:"book"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Stage is how far placement of a single item got.
type Stage string

const (
	StageResolveBook Stage = "resolve_book"
	StageCreate      Stage = "create_order"
	StageLinkOrder   Stage = "link_order"
	StageClearCart   Stage = "clear_cart"
	StageDone        Stage = "done"
)

// ItemResult reports one book of a placement. On failure Stage is the step
// that failed and OrderID is set whenever the order row exists.
type ItemResult struct {
	BookID  string `json:"bookId"`
	OrderID string `json:"orderId,omitempty"`
	Stage   Stage  `json:"stage"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func (r ItemResult) OK() bool { return r.Stage == StageDone }
