package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestResolvePure(t *testing.T) {
	now := time.Now().UTC()
	authed := account.Session{Authenticated: true, UserID: "u1"}

	verifiedSeeker := profile.SeekerProfile{
		UserID:            "u1",
		IsIDVerified:      true,
		QuizCompletedAt:   timePtr(now),
		IsContactVerified: true,
	}
	quizMissing := verifiedSeeker
	quizMissing.QuizCompletedAt = nil

	verifiedBusiness := profile.BusinessProfile{UserID: "u1", IsVerifiedLocal: true}
	unverifiedBusiness := profile.BusinessProfile{UserID: "u1"}

	cases := []struct {
		name     string
		sess     account.Session
		role     account.Role
		seeker   *profile.SeekerProfile
		business *profile.BusinessProfile
		want     Route
	}{
		{"unauthenticated", account.Session{}, account.RoleSeeker, &verifiedSeeker, nil, RouteLogin},
		{"authenticated no role", authed, account.RoleUnset, nil, nil, RouteRoleSelect},
		{"seeker without profile", authed, account.RoleSeeker, nil, nil, RouteSeekerOnboarding},
		{"seeker quiz missing blocks home", authed, account.RoleSeeker, &quizMissing, nil, RouteSeekerOnboarding},
		{"seeker all gates cleared", authed, account.RoleSeeker, &verifiedSeeker, nil, RouteSeekerHome},
		{"business without profile", authed, account.RoleBusiness, nil, nil, RouteBusinessOnboarding},
		{"business unverified", authed, account.RoleBusiness, nil, &unverifiedBusiness, RouteBusinessOnboarding},
		{"business verified", authed, account.RoleBusiness, nil, &verifiedBusiness, RouteBusinessHome},
	}
	for _, tc := range cases {
		if got := Resolve(tc.sess, tc.role, tc.seeker, tc.business); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	sess := account.Session{Authenticated: true, UserID: "u1"}
	p := profile.SeekerProfile{UserID: "u1", IsIDVerified: true, IsContactVerified: true}
	first := Resolve(sess, account.RoleSeeker, &p, nil)
	for i := 0; i < 10; i++ {
		if got := Resolve(sess, account.RoleSeeker, &p, nil); got != first {
			t.Fatalf("resolution changed between identical inputs: %q then %q", first, got)
		}
	}
}

func seedResolver(t *testing.T) (*Resolver, account.Repository, profile.Repository) {
	t.Helper()
	accounts := account.NewMemoryRepository()
	profiles := profile.NewMemoryRepository()
	if err := accounts.Create(context.Background(), account.User{ID: "u1", Email: "u1@example.com", Role: account.RoleBusiness}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewResolver(accounts, profiles), accounts, profiles
}

func TestResolverCurrentBusinessFlow(t *testing.T) {
	resolver, _, profiles := seedResolver(t)
	ctx := context.Background()
	sess := account.Session{Authenticated: true, UserID: "u1"}

	if got := resolver.Current(ctx, sess); got != RouteBusinessOnboarding {
		t.Fatalf("no profile yet: got %q, want %q", got, RouteBusinessOnboarding)
	}

	if err := profiles.CreateBusiness(ctx, profile.BusinessProfile{UserID: "u1", BusinessName: "Cafe"}); err != nil {
		t.Fatalf("create business: %v", err)
	}
	if got := resolver.Current(ctx, sess); got != RouteBusinessOnboarding {
		t.Fatalf("unverified profile: got %q, want %q", got, RouteBusinessOnboarding)
	}

	p, _ := profiles.FetchBusiness(ctx, "u1")
	p.IsVerifiedLocal = true
	if _, err := profiles.UpdateBusiness(ctx, p); err != nil {
		t.Fatalf("update business: %v", err)
	}
	if got := resolver.Current(ctx, sess); got != RouteBusinessHome {
		t.Fatalf("verified profile: got %q, want %q", got, RouteBusinessHome)
	}
}

func TestResolverCurrentUnknownUser(t *testing.T) {
	resolver, _, _ := seedResolver(t)
	sess := account.Session{Authenticated: true, UserID: "ghost"}
	if got := resolver.Current(context.Background(), sess); got != RouteLogin {
		t.Fatalf("unknown user must fail closed to login, got %q", got)
	}
}

// failingProfiles simulates a broken profile store: every fetch errors.
type failingProfiles struct {
	profile.Repository
}

func (failingProfiles) FetchSeeker(context.Context, string) (profile.SeekerProfile, error) {
	return profile.SeekerProfile{}, errors.New("store unavailable")
}

func (failingProfiles) FetchBusiness(context.Context, string) (profile.BusinessProfile, error) {
	return profile.BusinessProfile{}, errors.New("store unavailable")
}

func TestResolverFailsClosedOnFetchError(t *testing.T) {
	accounts := account.NewMemoryRepository()
	ctx := context.Background()
	if err := accounts.Create(ctx, account.User{ID: "u1", Email: "u1@example.com", Role: account.RoleSeeker}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	resolver := NewResolver(accounts, failingProfiles{})

	sess := account.Session{Authenticated: true, UserID: "u1"}
	if got := resolver.Current(ctx, sess); got != RouteLogin {
		t.Fatalf("a profile-load error must never reach a home route, got %q", got)
	}
}
