package book

import (
	"strings"
	"time"
)

type Book struct {
	ID        string    `json:"_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Price     float64   `json:"price"`
	Desc      string    `json:"desc"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Input struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Desc     string  `json:"desc"`
	Language string  `json:"language"`
}

// UpdateInput leaves a field untouched when it is nil.
type UpdateInput struct {
	URL      *string  `json:"url"`
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	Price    *float64 `json:"price"`
	Desc     *string  `json:"desc"`
	Language *string  `json:"language"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.URL) == "" ||
		strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Author) == "" ||
		strings.TrimSpace(in.Desc) == "" ||
		strings.TrimSpace(in.Language) == "" {
		return ErrMissingFields
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (in UpdateInput) validate() error {
	if !in.hasAny() {
		return ErrNoUpdateFields
	}
	for _, s := range []*string{in.URL, in.Title, in.Author, in.Desc, in.Language} {
		if s != nil && strings.TrimSpace(*s) == "" {
			return ErrMissingFields
		}
	}
	if in.Price != nil && *in.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (in UpdateInput) hasAny() bool {
	return in.URL != nil ||
		in.Title != nil ||
		in.Author != nil ||
		in.Price != nil ||
		in.Desc != nil ||
		in.Language != nil
}
