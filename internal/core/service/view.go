package service

import (
	"net/http"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// LogoutPath is the recovery action offered on an invalid session.
const LogoutPath = "/auth/logout"

// ViewFor maps a validator state to exactly one of its three views.
func ViewFor(state domain.SessionState) domain.SessionView {
	switch state.Status {
	case domain.StatusValid:
		return domain.SessionView{View: domain.ViewPage, Status: state.Status.String()}
	case domain.StatusInvalid:
		return domain.SessionView{
			View:    domain.ViewSessionInvalid,
			Status:  state.Status.String(),
			Reason:  state.Reason,
			Message: invalidMessage(state.Reason),
			Action: &domain.ViewAction{
				Label:    "Login Again",
				Method:   http.MethodPost,
				Href:     LogoutPath,
				Redirect: domain.LoginPath,
			},
		}
	default:
		return domain.SessionView{View: domain.ViewLoading, Status: domain.StatusValidating.String()}
	}
}

func invalidMessage(reason domain.InvalidReason) string {
	switch reason {
	case domain.ReasonTokenExpired:
		return "Your session has expired. Please log in again."
	case domain.ReasonInactive:
		return "You were logged out after a period of inactivity."
	default:
		return "Your session is no longer valid. Please log in again."
	}
}
