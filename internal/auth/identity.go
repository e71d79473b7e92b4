package auth

import "time"

// Identity is the verified caller identity attached to every authenticated
// request. It is used for authorization gating only and is never joined
// against invoices.
type Identity struct {
	ID       uint      `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Expires  time.Time `json:"-"`
}

// ValidAt reports whether the identity is present and not expired at now.
func (id *Identity) ValidAt(now time.Time) bool {
	return id != nil && id.ID != 0 && now.Before(id.Expires)
}

// Verifier turns a bearer token into a verified identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}
