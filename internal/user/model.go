package user

import (
	"time"

	"bookstore-be/internal/auth"
)

const DefaultAvatar = "https://cdn-icons-png.flaticon.com/512/9187/9187604.png"

type User struct {
	ID          string
	Username    string
	Email       string
	Password    string
	Address     string
	Avatar      string
	Role        auth.Role
	Favourites  []string
	Cart        []string
	Orders      []string
	ListVersion int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Profile is a user as returned to callers, never carrying the password hash.
type Profile struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	Avatar     string    `json:"avatar"`
	Role       auth.Role `json:"role"`
	Favourites []string  `json:"favourites"`
	Cart       []string  `json:"cart"`
	Orders     []string  `json:"orders"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Address:    u.Address,
		Avatar:     u.Avatar,
		Role:       u.Role,
		Favourites: nonNil(u.Favourites),
		Cart:       nonNil(u.Cart),
		Orders:     nonNil(u.Orders),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
