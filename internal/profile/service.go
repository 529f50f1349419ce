package profile

import (
	"context"
	"errors"
	"time"
)

// Service manages profile lifecycle outside of the verification flows.
type Service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateSeeker provisions a seeker profile in its initial unverified state.
func (s *Service) CreateSeeker(ctx context.Context, userID, fullName string) (SeekerProfile, error) {
	if userID == "" {
		return SeekerProfile{}, errors.New("user id is required")
	}
	p := SeekerProfile{
		UserID:      userID,
		FullName:    fullName,
		SkillBadges: []string{},
	}
	if err := s.repo.CreateSeeker(ctx, p); err != nil {
		return SeekerProfile{}, err
	}
	return p, nil
}

// CreateBusiness provisions a business profile in its initial unverified state.
func (s *Service) CreateBusiness(ctx context.Context, userID, businessName, address string, lat, lon float64) (BusinessProfile, error) {
	if userID == "" {
		return BusinessProfile{}, errors.New("user id is required")
	}
	p := BusinessProfile{
		UserID:       userID,
		BusinessName: businessName,
		Address:      address,
		Latitude:     lat,
		Longitude:    lon,
	}
	if err := s.repo.CreateBusiness(ctx, p); err != nil {
		return BusinessProfile{}, err
	}
	return p, nil
}

// Seeker fetches a seeker profile by user ID.
func (s *Service) Seeker(ctx context.Context, userID string) (SeekerProfile, error) {
	return s.repo.FetchSeeker(ctx, userID)
}

// Business fetches a business profile by user ID.
func (s *Service) Business(ctx context.Context, userID string) (BusinessProfile, error) {
	return s.repo.FetchBusiness(ctx, userID)
}

// UpdateSeeker writes back a full seeker profile shape.
func (s *Service) UpdateSeeker(ctx context.Context, p SeekerProfile) (SeekerProfile, error) {
	return s.repo.UpdateSeeker(ctx, p)
}

// UpdateBusiness writes back a full business profile shape.
func (s *Service) UpdateBusiness(ctx context.Context, p BusinessProfile) (BusinessProfile, error) {
	return s.repo.UpdateBusiness(ctx, p)
}

// CompleteBasicsQuiz records a passed basics quiz, one of the three seeker
// trust gates.
func (s *Service) CompleteBasicsQuiz(ctx context.Context, userID string, score int) (SeekerProfile, error) {
	p, err := s.repo.FetchSeeker(ctx, userID)
	if err != nil {
		return SeekerProfile{}, err
	}
	now := time.Now().UTC()
	p.QuizScore = &score
	p.QuizCompletedAt = &now
	return s.repo.UpdateSeeker(ctx, p)
}
