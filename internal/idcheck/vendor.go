// Package idcheck is the boundary to an external identity-proofing vendor.
// The core owns only the pending/verified transition; the vendor's internal
// checks are opaque and its result blob is trusted as supplied.
package idcheck

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// Vendor represents a connector to an external ID-proofing provider such as
// Stripe Identity or Persona.
type Vendor interface {
	// CreateSession opens a verification session and returns the handle URL
	// the mobile client hands to the vendor SDK. The handle is opaque to
	// this service.
	CreateSession(ctx context.Context, userID string) (string, error)
	// Method is the verification method recorded on completion.
	Method() profile.IDMethod
}

// StaticVendor simulates a successful vendor integration, handing back a
// synthetic session URL.
type StaticVendor struct {
	BaseURL string
}

// CreateSession returns a synthetic session handle.
func (v StaticVendor) CreateSession(_ context.Context, userID string) (string, error) {
	base := v.BaseURL
	if base == "" {
		base = "https://id-verification.example.com/session"
	}
	return fmt.Sprintf("%s?user=%s&session=%s", base, userID, uuid.NewString()), nil
}

// Method reports the simulated vendor method.
func (StaticVendor) Method() profile.IDMethod {
	return profile.IDMethodSimulated
}
