package routing

import "github.com/The-Aegis-Project/SideGig/internal/profile"

// SeekerComplete reports whether a seeker has cleared all three trust
// gates: ID verification, the basics quiz and contact verification. The
// onboarding submit button and the resolver share this predicate so the
// boolean logic lives in exactly one place.
func SeekerComplete(p profile.SeekerProfile) bool {
	return p.IsIDVerified && p.QuizCompletedAt != nil && p.IsContactVerified
}

// BusinessComplete reports whether a business has earned local
// verification. Businesses have a single gate, reached either by platform
// linking or by a confirmed mail code.
func BusinessComplete(p profile.BusinessProfile) bool {
	return p.IsVerifiedLocal
}
