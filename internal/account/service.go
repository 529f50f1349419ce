package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorizedRoleUpdate indicates a role mutation targeted a user ID
	// that does not match the active session.
	ErrUnauthorizedRoleUpdate = errors.New("role update does not match active session")
	// ErrMissingProfileDetails indicates a social sign-in produced a brand-new
	// account with no role or profile information supplied.
	ErrMissingProfileDetails = errors.New("profile details required for new user")
)

// Service manages account lifecycle: sign-up, sign-in and role selection.
// Sign-up is merged with profile creation so a new user always lands with
// the profile their role requires.
type Service struct {
	repo     Repository
	profiles *profile.Service
}

// NewService creates a new account service.
func NewService(repo Repository, profiles *profile.Service) *Service {
	return &Service{repo: repo, profiles: profiles}
}

// SignUp registers an email/password account, stores the role and creates
// the matching profile.
func (s *Service) SignUp(ctx context.Context, email, password string, details ProfileDetails) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if len(password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}
	if err := details.Validate(); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     details.FullName,
		Role:         details.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	if err := s.createProfile(ctx, u.ID, details); err != nil {
		return User{}, err
	}
	return u, nil
}

// SignIn verifies email/password credentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SocialSignIn signs a user in through an external identity provider. A
// returning user passes straight through. A brand-new user must arrive with
// profile details so the merged sign-up can create their role and profile;
// without them the sign-in fails and the UI is expected to collect the
// details and retry.
func (s *Service) SocialSignIn(ctx context.Context, provider, subject, email, fullName string, details *ProfileDetails) (User, error) {
	if provider == "" || subject == "" {
		return User{}, errors.New("provider and subject are required")
	}

	u, err := s.repo.FindBySocial(ctx, provider, subject)
	switch {
	case err == nil:
		// Providers only share the display name on the first sign-in, so
		// backfill it when the stored record has none.
		if u.FullName == "" && fullName != "" {
			if err := s.repo.UpdateFullName(ctx, u.ID, fullName); err != nil {
				return User{}, err
			}
			u.FullName = fullName
		}
		return u, nil
	case errors.Is(err, ErrNotFound):
		// fall through to new-user provisioning
	default:
		return User{}, err
	}

	if details == nil {
		return User{}, ErrMissingProfileDetails
	}
	if err := details.Validate(); err != nil {
		return User{}, err
	}

	name := details.FullName
	if name == "" {
		name = fullName
	}
	u = User{
		ID:              uuid.New().String(),
		Email:           normalizeEmail(email),
		FullName:        name,
		Role:            details.Role,
		Provider:        provider,
		ProviderSubject: subject,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	if err := s.createProfile(ctx, u.ID, *details); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetRole stores the selected role for a user. The target must be the user
// who owns the active session.
func (s *Service) SetRole(ctx context.Context, sess Session, userID string, role Role) error {
	if !sess.Authenticated || sess.UserID != userID {
		return ErrUnauthorizedRoleUpdate
	}
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// Role looks up the stored role for a user. RoleUnset means the user has
// not chosen a side of the marketplace yet.
func (s *Service) Role(ctx context.Context, userID string) (Role, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return RoleUnset, err
	}
	return u.Role, nil
}

func (s *Service) createProfile(ctx context.Context, userID string, details ProfileDetails) error {
	switch details.Role {
	case RoleSeeker:
		if _, err := s.profiles.CreateSeeker(ctx, userID, details.FullName); err != nil {
			return fmt.Errorf("create seeker profile: %w", err)
		}
	case RoleBusiness:
		if _, err := s.profiles.CreateBusiness(ctx, userID, details.BusinessName, details.Address, details.Latitude, details.Longitude); err != nil {
			return fmt.Errorf("create business profile: %w", err)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
