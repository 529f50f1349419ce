// Package routing decides which screen a session lands on. Resolution is a
// pure function of session, role and profile state; it is recomputed after
// every mutation and never cached.
package routing

// Route is the screen the client should present. Routes are derived, never
// persisted.
type Route string

const (
	RouteLogin              Route = "login"
	RouteRoleSelect         Route = "role_select"
	RouteSeekerOnboarding   Route = "seeker_onboarding"
	RouteBusinessOnboarding Route = "business_onboarding"
	RouteSeekerHome         Route = "seeker_home"
	RouteBusinessHome       Route = "business_home"
)
