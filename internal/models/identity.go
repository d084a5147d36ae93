package models

// Identity is what an external identity provider asserted about a session.
type Identity struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsZero reports whether no identity has been stored yet.
func (i Identity) IsZero() bool {
	return i == Identity{}
}
