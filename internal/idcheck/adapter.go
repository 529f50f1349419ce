package idcheck

import (
	"context"
	"errors"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// Status of a seeker's ID verification. There is no rejected state: a
// vendor rejection is indistinguishable from an abandoned attempt, and both
// decay back to not_started once the session handle expires.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
)

// Adapter drives the seeker ID verification hand-off.
type Adapter struct {
	profiles profile.Repository
	vendor   Vendor
	sessions SessionStore
	now      func() time.Time
}

// NewAdapter creates a new ID verification adapter.
func NewAdapter(profiles profile.Repository, vendor Vendor, sessions SessionStore) *Adapter {
	return &Adapter{profiles: profiles, vendor: vendor, sessions: sessions, now: time.Now}
}

// Initiate opens a vendor session for the seeker and returns the opaque
// handle URL. The profile must exist first.
func (a *Adapter) Initiate(ctx context.Context, userID string) (string, error) {
	if _, err := a.profiles.FetchSeeker(ctx, userID); err != nil {
		return "", err
	}
	handle, err := a.vendor.CreateSession(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := a.sessions.Put(ctx, userID, handle); err != nil {
		return "", err
	}
	return handle, nil
}

// Complete records a finished vendor flow. The result blob is trusted as
// supplied and never parsed here; provenance checks belong to the vendor
// callback layer, not this core.
func (a *Adapter) Complete(ctx context.Context, userID string, result []byte) (profile.SeekerProfile, error) {
	p, err := a.profiles.FetchSeeker(ctx, userID)
	if err != nil {
		return profile.SeekerProfile{}, err
	}

	_ = result

	now := a.now().UTC()
	p.IsIDVerified = true
	p.IDVerificationMethod = a.vendor.Method()
	p.IDVerificationDate = &now

	updated, err := a.profiles.UpdateSeeker(ctx, p)
	if err != nil {
		return profile.SeekerProfile{}, err
	}

	// Best effort: a stale pending handle only affects status reporting.
	_ = a.sessions.Delete(ctx, userID)
	return updated, nil
}

// Current reports where the seeker sits in the verification flow.
func (a *Adapter) Current(ctx context.Context, userID string) (Status, error) {
	p, err := a.profiles.FetchSeeker(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return StatusNotStarted, nil
		}
		return StatusNotStarted, err
	}
	if p.IsIDVerified {
		return StatusVerified, nil
	}
	handle, err := a.sessions.Get(ctx, userID)
	if err != nil {
		return StatusNotStarted, err
	}
	if handle != "" {
		return StatusPending, nil
	}
	return StatusNotStarted, nil
}
