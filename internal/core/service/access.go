package service

import (
	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// AccessSnapshot is the credential state an access decision is made on.
type AccessSnapshot struct {
	LoggedIn bool
	Role     domain.Role // empty when no role marker is stored
}

// Decide evaluates policy for a visitor at location. Rules apply in order
// and the first that redirects wins:
//
//  1. auth required, not logged in      → login page, remembering location
//  2. role required, current role other → current role's dashboard, or login
//  3. logged-out-only page, logged in   → current role's dashboard
//  4. otherwise render, validating the session when auth is required and
//     the route is secure
func Decide(policy domain.RoutePolicy, snap AccessSnapshot, location string) domain.Decision {
	redirectTo := policy.RedirectTo
	if redirectTo == "" {
		redirectTo = domain.LoginPath
	}

	if policy.RequireAuth && !snap.LoggedIn {
		return domain.Decision{
			Outcome:  domain.OutcomeRedirectLogin,
			Location: redirectTo,
			From:     location,
		}
	}

	if policy.RequiredRole != "" && snap.Role != policy.RequiredRole {
		if dash, ok := snap.Role.DashboardPath(); ok {
			return domain.Decision{Outcome: domain.OutcomeRedirectDashboard, Location: dash}
		}
		return domain.Decision{Outcome: domain.OutcomeRedirectLogin, Location: domain.LoginPath}
	}

	if !policy.RequireAuth && snap.LoggedIn {
		if dash, ok := snap.Role.DashboardPath(); ok {
			return domain.Decision{Outcome: domain.OutcomeRedirectDashboard, Location: dash}
		}
	}

	return domain.Decision{
		Outcome:  domain.OutcomeRender,
		Validate: policy.RequireAuth && policy.Secure,
	}
}
