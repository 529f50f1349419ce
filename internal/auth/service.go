package auth

import (
	"context"
	"errors"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/config"
)

// Service issues and refreshes session tokens for authenticated accounts.
type Service struct {
	cfg      config.Config
	accounts account.Repository
}

// NewService creates a new token service.
func NewService(cfg config.Config, accounts account.Repository) *Service {
	return &Service{cfg: cfg, accounts: accounts}
}

// TokenPair bundles the tokens returned on sign-in.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Issue signs an access/refresh token pair for the user. Credential checks
// happen in account.Service before this is called.
func (s *Service) Issue(user account.User) (TokenPair, error) {
	access, accessExp, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.sign(user, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(accessExp).Seconds()),
	}, nil
}

func (s *Service) sign(user account.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := map[string]any{
		"sub":  user.ID,
		"role": string(user.Role),
		"ver":  user.TokenVersion,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Refresh verifies the refresh token and returns a new access token if the
// token version is still current.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := ParseAndVerifyHS256(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, errors.New("invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	verFloat, _ := claims["ver"].(float64)
	ver := int(verFloat)

	user, err := s.accounts.FindByID(ctx, sub)
	if err != nil {
		return "", 0, errors.New("user not found")
	}
	if user.TokenVersion != ver {
		return "", 0, errors.New("token version invalidated")
	}

	access, _, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return access, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// SignOut increments the token version so outstanding tokens become invalid.
func (s *Service) SignOut(ctx context.Context, userID string) error {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.accounts.UpdateTokenVersion(ctx, userID, user.TokenVersion+1)
}
