// Package linking marks business profiles verified by trusting an external
// directory attestation. Unlike the mail-code flow there is no challenge
// step: a recognized Google Business Profile or Yelp listing is treated as
// sufficient proof, so verification lands synchronously.
package linking

import (
	"context"
	"fmt"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// Service links business profiles to external platform listings.
type Service struct {
	profiles profile.Repository
}

// NewService creates a new linking service.
func NewService(profiles profile.Repository) *Service {
	return &Service{profiles: profiles}
}

// LinkInput carries the values returned by the trusted platform lookup.
// They overwrite whatever the business typed during onboarding.
type LinkInput struct {
	Platform     profile.Platform
	ExternalID   string
	BusinessName string
	Address      string
	Latitude     float64
	Longitude    float64
}

// LinkExternalProfile attaches the platform listing to the business profile
// and marks it verified. Fails with profile.ErrNotFound when no business
// profile exists yet; nothing is written in that case.
func (s *Service) LinkExternalProfile(ctx context.Context, userID string, in LinkInput) (profile.BusinessProfile, error) {
	if in.Platform.Method() == profile.MethodNone {
		return profile.BusinessProfile{}, fmt.Errorf("unsupported platform %q", in.Platform)
	}
	if in.ExternalID == "" {
		return profile.BusinessProfile{}, fmt.Errorf("external listing id is required")
	}

	p, err := s.profiles.FetchBusiness(ctx, userID)
	if err != nil {
		return profile.BusinessProfile{}, err
	}

	p.BusinessName = in.BusinessName
	p.Address = in.Address
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	p.IsVerifiedLocal = true
	p.VerificationMethod = in.Platform.Method()
	p.LinkedPlatform = in.Platform
	p.LinkedPlatformID = in.ExternalID

	return s.profiles.UpdateBusiness(ctx, p)
}
