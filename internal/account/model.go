package account

import (
	"errors"
	"fmt"
	"time"
)

// Role is the side of the marketplace a user acts on. It is set once through
// an explicit role-selection action; the zero value means no role has been
// chosen yet.
type Role string

const (
	RoleUnset    Role = ""
	RoleSeeker   Role = "seeker"
	RoleBusiness Role = "business"
)

// ParseRole maps a wire value to a known role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeeker, RoleBusiness:
		return Role(s), nil
	default:
		return RoleUnset, fmt.Errorf("unknown role %q", s)
	}
}

// Session is the authentication state observed by the route resolver. It is
// a value, not a process-wide singleton, so resolution stays a pure function
// of its inputs.
type Session struct {
	Authenticated bool
	UserID        string
}

// User is a registered account. Social sign-ins carry a provider/subject
// pair and no password hash.
type User struct {
	ID              string
	Email           string
	FullName        string
	Role            Role
	PasswordHash    []byte
	Provider        string
	ProviderSubject string
	TokenVersion    int
	CreatedAt       time.Time
}

// ProfileDetails carries the initial profile supplied during sign-up. The
// Role field selects which half of the struct is meaningful.
type ProfileDetails struct {
	Role Role

	// Seeker fields.
	FullName string

	// Business fields.
	BusinessName string
	Address      string
	Latitude     float64
	Longitude    float64
}

// Validate checks the details against the declared role.
func (d ProfileDetails) Validate() error {
	switch d.Role {
	case RoleSeeker:
		if d.FullName == "" {
			return errors.New("full name is required for seekers")
		}
	case RoleBusiness:
		if d.BusinessName == "" {
			return errors.New("business name is required for businesses")
		}
		if d.Address == "" {
			return errors.New("address is required for businesses")
		}
	default:
		return errors.New("role must be seeker or business")
	}
	return nil
}
