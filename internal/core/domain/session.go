package domain

import "time"

// Storage keys outside the per-role token keys.
const (
	RoleKey         = "role"
	LastActivityKey = "lastActivity" // epoch milliseconds
)

// SessionStatus is the validator's state.
type SessionStatus int

const (
	StatusValidating SessionStatus = iota
	StatusValid
	StatusInvalid
)

func (s SessionStatus) String() string {
	switch s {
	case StatusValidating:
		return "validating"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// InvalidReason explains an Invalid state.
type InvalidReason string

const (
	ReasonNone         InvalidReason = ""
	ReasonNoToken      InvalidReason = "no_token"
	ReasonTokenExpired InvalidReason = "token_expired"
	ReasonInactive     InvalidReason = "inactive"
)

// SessionState is Validating, Valid, or Invalid(reason). Reason is only set
// when Status is StatusInvalid.
type SessionState struct {
	Status SessionStatus
	Reason InvalidReason
}

var (
	Validating = SessionState{Status: StatusValidating}
	Valid      = SessionState{Status: StatusValid}
)

// Invalid builds an Invalid state for reason.
func Invalid(reason InvalidReason) SessionState {
	return SessionState{Status: StatusInvalid, Reason: reason}
}

// ClearsCredentials reports whether entering this state forces a logout.
func (s SessionState) ClearsCredentials() bool {
	return s.Status == StatusInvalid && (s.Reason == ReasonTokenExpired || s.Reason == ReasonInactive)
}

// View names rendered for each session state.
const (
	ViewLoading        = "loading"
	ViewSessionInvalid = "session_invalid"
	ViewPage           = "page"
)

// ViewAction is the single recovery affordance offered on an invalid session.
type ViewAction struct {
	Label    string `json:"label"`
	Method   string `json:"method"`
	Href     string `json:"href"`
	Redirect string `json:"redirect"`
}

// SessionView is what the browser renders for a given session state.
type SessionView struct {
	View    string        `json:"view"`
	Status  string        `json:"status"`
	Reason  InvalidReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`
	Action  *ViewAction   `json:"action,omitempty"`
}

// ActivityEvent is a recognised user interaction.
type ActivityEvent string

const (
	ActivityMouseDown  ActivityEvent = "mousedown"
	ActivityMouseMove  ActivityEvent = "mousemove"
	ActivityKeyPress   ActivityEvent = "keypress"
	ActivityScroll     ActivityEvent = "scroll"
	ActivityTouchStart ActivityEvent = "touchstart"
	ActivityClick      ActivityEvent = "click"
)

// Valid reports whether e is one of the tracked interaction events.
func (e ActivityEvent) Valid() bool {
	switch e {
	case ActivityMouseDown, ActivityMouseMove, ActivityKeyPress,
		ActivityScroll, ActivityTouchStart, ActivityClick:
		return true
	}
	return false
}

// SessionEventKind classifies entries in the session audit trail.
type SessionEventKind string

const (
	SessionLogin       SessionEventKind = "login"
	SessionSignup      SessionEventKind = "signup"
	SessionLogout      SessionEventKind = "logout"
	SessionInvalidated SessionEventKind = "invalidated"
)

// SessionEvent is one audit record of a session lifecycle change.
type SessionEvent struct {
	SessionID string
	Kind      SessionEventKind
	Role      Role
	Reason    InvalidReason
	At        time.Time
}
