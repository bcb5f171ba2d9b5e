package domain

// Role identifies which side of the marketplace a user acts for.
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleFreelancer Role = "FREELANCER"
)

// Dashboard paths each role lands on after login or when bounced from a
// route owned by the other role.
const (
	ClientDashboardPath     = "/client-dashboard"
	FreelancerDashboardPath = "/freelancer-dashboard"
	LoginPath               = "/login"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleFreelancer
}

// TokenKey is the storage key holding the bearer token for r.
// It returns "" for unrecognised roles.
func (r Role) TokenKey() string {
	switch r {
	case RoleClient:
		return "clienttoken"
	case RoleFreelancer:
		return "freelancertoken"
	default:
		return ""
	}
}

// DashboardPath returns the landing page for r and whether r is recognised.
func (r Role) DashboardPath() (string, bool) {
	switch r {
	case RoleClient:
		return ClientDashboardPath, true
	case RoleFreelancer:
		return FreelancerDashboardPath, true
	default:
		return "", false
	}
}

// ParseRole converts user input into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}
