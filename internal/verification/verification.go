// Package verification implements the one-time code flow that gates a
// profile's trust status. The same algorithm serves seeker contact
// verification and business mail verification; the Store interface binds it
// to the target entity.
package verification

import (
	"context"
	"errors"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// CodeValidity is how long an issued code can be confirmed. Expiry is
// evaluated lazily at confirm time; there is no background sweeper.
const CodeValidity = 7 * 24 * time.Hour

var (
	// ErrNotInitiated indicates confirm was called with no outstanding attempt.
	ErrNotInitiated = errors.New("verification not initiated")
	// ErrInvalidCode indicates the supplied code does not match the stored one.
	ErrInvalidCode = errors.New("incorrect verification code")
	// ErrCodeExpired indicates the code matched but its window has elapsed;
	// the caller must initiate a fresh attempt.
	ErrCodeExpired = errors.New("verification code expired")
)

// Attempt is the stored state of one verification attempt. The code is a
// six-character zero-padded decimal string; it survives until it is
// overwritten by a new attempt or cleared by a successful confirmation.
type Attempt struct {
	Code        string
	InitiatedAt time.Time
	ConfirmedAt *time.Time
}

// Outstanding reports whether the attempt can still be confirmed (ignoring
// expiry, which the service checks against the clock).
func (a Attempt) Outstanding() bool {
	return a.Code != "" && !a.InitiatedAt.IsZero()
}

// Request carries the target-specific inputs of an initiation. Destination
// is an email address or phone number for the contact target and a mailing
// address for the mail target. Method applies to the contact target only;
// the mail target always records the mail method.
type Request struct {
	Destination string
	Method      profile.ContactMethod
}

// Store binds the code algorithm to the profile fields that persist it.
// Every call performs a fresh read-modify-write against the profile store;
// nothing is cached between calls.
type Store interface {
	// Load returns the current attempt state for the profile.
	Load(ctx context.Context, userID string) (Attempt, error)
	// Begin persists a fresh attempt and forces the target's verified flag
	// back to false. Re-initiating always resets trust.
	Begin(ctx context.Context, userID string, a Attempt, req Request) error
	// Finish marks the target verified, stamps the confirmation time and
	// clears the stored code so it cannot be replayed.
	Finish(ctx context.Context, userID string, confirmedAt time.Time) error
}
