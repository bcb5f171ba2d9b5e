package domain

// RoutePolicy declares who may render a page.
type RoutePolicy struct {
	// RequireAuth false marks a logged-out-only page such as login or signup.
	RequireAuth bool
	// RequiredRole restricts the page to one role. Empty means any role.
	RequiredRole Role
	// RedirectTo is where unauthenticated visitors are sent.
	RedirectTo string
	// Secure wraps the page in the session validator when auth is required.
	Secure bool
}

// DefaultRoutePolicy is an auth-required, security-enabled page with no role restriction.
func DefaultRoutePolicy() RoutePolicy {
	return RoutePolicy{RequireAuth: true, RedirectTo: LoginPath, Secure: true}
}

// PublicOnly returns the policy for pages only logged-out visitors should see.
func PublicOnly() RoutePolicy {
	p := DefaultRoutePolicy()
	p.RequireAuth = false
	return p
}

// RoleOnly returns an auth-required policy restricted to role.
func RoleOnly(role Role) RoutePolicy {
	p := DefaultRoutePolicy()
	p.RequiredRole = role
	return p
}

// LiveSessionPolicy is the policy of the live session socket. It requires
// auth but validates inside the socket, so the loading state stays observable.
func LiveSessionPolicy() RoutePolicy {
	p := DefaultRoutePolicy()
	p.Secure = false
	return p
}

// Outcome is what the access decision tells the router to do.
type Outcome int

const (
	OutcomeRender Outcome = iota
	OutcomeRedirectLogin
	OutcomeRedirectDashboard
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeRedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating a RoutePolicy against the current session.
type Decision struct {
	Outcome Outcome
	// Location is the redirect target. Empty when Outcome is OutcomeRender.
	Location string
	// From is the attempted location, carried on login redirects so the
	// login flow can send the user back.
	From string
	// Validate is set when the rendered page must pass the session validator first.
	Validate bool
}
