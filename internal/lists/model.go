package lists

// Kind names one of the per-user reference lists.
type Kind string

const (
	Favourites Kind = "favourites"
	Cart       Kind = "cart"
	Orders     Kind = "orders"
)

// column maps a kind to its users column. Only these names ever reach SQL.
func (k Kind) column() (string, bool) {
	switch k {
	case Favourites:
		return "favourites", true
	case Cart:
		return "cart", true
	case Orders:
		return "orders", true
	}
	return "", false
}

// holdsBooks reports whether entries of this list reference catalog books.
func (k Kind) holdsBooks() bool {
	return k == Favourites || k == Cart
}

// Result describes the outcome of an add or remove.
type Result struct {
	// Present is whether the reference was in the list before the call.
	Present bool
	Changed bool
	Items   []string
}
