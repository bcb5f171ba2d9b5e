package handler

import (
	"time"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=CLIENT FREELANCER"`
	From     string `json:"from"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	From     string `json:"from"`
}

type authResponse struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type activityRequest struct {
	Event string `json:"event" validate:"required"`
}

type sessionResponse struct {
	LoggedIn     bool                 `json:"logged_in"`
	Role         domain.Role          `json:"role,omitempty"`
	State        string               `json:"state"`
	Reason       domain.InvalidReason `json:"reason,omitempty"`
	LastActivity *time.Time           `json:"last_activity,omitempty"`
}

type pageResponse struct {
	Page   string      `json:"page"`
	Path   string      `json:"path"`
	Role   domain.Role `json:"role,omitempty"`
	View   string      `json:"view"`
	Status string      `json:"status,omitempty"`
}

type meResponse struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}
