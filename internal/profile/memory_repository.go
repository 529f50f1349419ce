package profile

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu         sync.RWMutex
	seekers    map[string]SeekerProfile
	businesses map[string]BusinessProfile
}

// NewMemoryRepository builds an in-memory profile store used in development
// mode and in tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		seekers:    make(map[string]SeekerProfile),
		businesses: make(map[string]BusinessProfile),
	}
}

func (r *memoryRepository) CreateSeeker(_ context.Context, p SeekerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.seekers[p.UserID]; exists {
		return errors.New("seeker profile exists")
	}
	r.seekers[p.UserID] = p
	return nil
}

func (r *memoryRepository) FetchSeeker(_ context.Context, userID string) (SeekerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.seekers[userID]
	if !ok {
		return SeekerProfile{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) UpdateSeeker(_ context.Context, p SeekerProfile) (SeekerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seekers[p.UserID]; !ok {
		return SeekerProfile{}, ErrNotFound
	}
	r.seekers[p.UserID] = p
	return p, nil
}

func (r *memoryRepository) CreateBusiness(_ context.Context, p BusinessProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.businesses[p.UserID]; exists {
		return errors.New("business profile exists")
	}
	r.businesses[p.UserID] = p
	return nil
}

func (r *memoryRepository) FetchBusiness(_ context.Context, userID string) (BusinessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.businesses[userID]
	if !ok {
		return BusinessProfile{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) UpdateBusiness(_ context.Context, p BusinessProfile) (BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.businesses[p.UserID]; !ok {
		return BusinessProfile{}, ErrNotFound
	}
	r.businesses[p.UserID] = p
	return p, nil
}
