package auth

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the authenticated caller as decoded from a verified token.
type Identity struct {
	ID   string
	Role Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
