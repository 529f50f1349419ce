package routing

import (
	"context"
	"errors"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// Resolve maps session, role and profile state to the active screen. A nil
// profile means none exists yet, which sends the user to onboarding to
// create one. Given identical inputs the result is always identical.
func Resolve(sess account.Session, role account.Role, seeker *profile.SeekerProfile, business *profile.BusinessProfile) Route {
	if !sess.Authenticated || sess.UserID == "" {
		return RouteLogin
	}
	switch role {
	case account.RoleSeeker:
		if seeker == nil || !SeekerComplete(*seeker) {
			return RouteSeekerOnboarding
		}
		return RouteSeekerHome
	case account.RoleBusiness:
		if business == nil || !BusinessComplete(*business) {
			return RouteBusinessOnboarding
		}
		return RouteBusinessHome
	default:
		return RouteRoleSelect
	}
}

// Resolver loads the state Resolve needs from the account and profile
// stores. Any fetch failure fails closed to the login route: a load error
// must never land a user on a home screen.
type Resolver struct {
	accounts account.Repository
	profiles profile.Repository
}

// NewResolver creates a resolver over the given stores.
func NewResolver(accounts account.Repository, profiles profile.Repository) *Resolver {
	return &Resolver{accounts: accounts, profiles: profiles}
}

// Current resolves the active route for the session.
func (r *Resolver) Current(ctx context.Context, sess account.Session) Route {
	if !sess.Authenticated || sess.UserID == "" {
		return RouteLogin
	}

	user, err := r.accounts.FindByID(ctx, sess.UserID)
	if err != nil {
		return RouteLogin
	}

	switch user.Role {
	case account.RoleSeeker:
		p, err := r.profiles.FetchSeeker(ctx, sess.UserID)
		if errors.Is(err, profile.ErrNotFound) {
			return Resolve(sess, user.Role, nil, nil)
		}
		if err != nil {
			return RouteLogin
		}
		return Resolve(sess, user.Role, &p, nil)
	case account.RoleBusiness:
		p, err := r.profiles.FetchBusiness(ctx, sess.UserID)
		if errors.Is(err, profile.ErrNotFound) {
			return Resolve(sess, user.Role, nil, nil)
		}
		if err != nil {
			return RouteLogin
		}
		return Resolve(sess, user.Role, nil, &p)
	default:
		return RouteRoleSelect
	}
}
