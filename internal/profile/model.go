package profile

import (
	"fmt"
	"time"
)

// VerificationMethod identifies how a business profile earned its local
// verification. The set is closed; persisted values must match these
// constants exactly.
type VerificationMethod string

const (
	MethodNone          VerificationMethod = ""
	MethodGoogleProfile VerificationMethod = "google_profile"
	MethodYelpProfile   VerificationMethod = "yelp_profile"
	MethodMail          VerificationMethod = "mail"
)

// Platform is an external business directory whose attestation we trust.
type Platform string

const (
	PlatformGoogle Platform = "Google Business Profile"
	PlatformYelp   Platform = "Yelp"
)

// Method returns the verification method recorded when a profile is linked
// through the platform.
func (p Platform) Method() VerificationMethod {
	switch p {
	case PlatformGoogle:
		return MethodGoogleProfile
	case PlatformYelp:
		return MethodYelpProfile
	default:
		return MethodNone
	}
}

// ParsePlatform maps a wire value to a known platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformGoogle, PlatformYelp:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}

// ContactMethod is the channel used to deliver a seeker contact code.
type ContactMethod string

const (
	ContactNone  ContactMethod = ""
	ContactEmail ContactMethod = "email"
	ContactSMS   ContactMethod = "sms"
)

// ParseContactMethod maps a wire value to a delivery channel.
func ParseContactMethod(s string) (ContactMethod, error) {
	switch ContactMethod(s) {
	case ContactEmail, ContactSMS:
		return ContactMethod(s), nil
	default:
		return "", fmt.Errorf("unknown contact method %q", s)
	}
}

// IDMethod identifies the identity-proofing vendor that verified a seeker.
type IDMethod string

const (
	IDMethodNone      IDMethod = ""
	IDMethodStripe    IDMethod = "stripe_identity"
	IDMethodPersona   IDMethod = "persona"
	IDMethodSimulated IDMethod = "simulated_service"
)

// SeekerProfile is the trust record for a gig seeker. Verification codes are
// six-character zero-padded decimal strings; an empty code means no attempt
// is outstanding.
type SeekerProfile struct {
	UserID   string
	FullName string

	ReliabilityBadgeEarned bool
	SkillBadges            []string
	AvgRating              *float64

	IsIDVerified         bool
	IDVerificationMethod IDMethod
	IDVerificationDate   *time.Time

	QuizScore       *int
	QuizCompletedAt *time.Time

	IsContactVerified         bool
	ContactVerificationCode   string
	ContactVerificationMethod ContactMethod
	ContactInitiatedAt        *time.Time
	ContactConfirmedAt        *time.Time
}

// BusinessProfile is the trust record for a local business. IsVerifiedLocal
// holds only while a linking action succeeded or a mail code was confirmed;
// initiating a new mail verification forces it back to false.
type BusinessProfile struct {
	UserID       string
	BusinessName string
	Address      string
	Latitude     float64
	Longitude    float64
	AvgRating    *float64

	IsVerifiedLocal    bool
	VerificationMethod VerificationMethod
	LinkedPlatform     Platform
	LinkedPlatformID   string

	MailVerificationCode string
	MailInitiatedAt      *time.Time
	MailConfirmedAt      *time.Time
}
