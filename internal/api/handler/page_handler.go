package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/session-gateway/internal/api/middleware"
	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// Page is one entry of the gateway's route table.
type Page struct {
	Path   string
	Name   string
	Policy domain.RoutePolicy
}

// Pages returns the route table of the marketplace front end.
func Pages() []Page {
	return []Page{
		{Path: domain.LoginPath, Name: "login", Policy: domain.PublicOnly()},
		{Path: "/signup", Name: "signup", Policy: domain.PublicOnly()},

		{Path: domain.ClientDashboardPath, Name: "client_dashboard", Policy: domain.RoleOnly(domain.RoleClient)},
		{Path: "/post-job", Name: "post_job", Policy: domain.RoleOnly(domain.RoleClient)},
		{Path: "/my-jobs", Name: "my_jobs", Policy: domain.RoleOnly(domain.RoleClient)},
		{Path: "/talent-search", Name: "talent_search", Policy: domain.RoleOnly(domain.RoleClient)},

		{Path: domain.FreelancerDashboardPath, Name: "freelancer_dashboard", Policy: domain.RoleOnly(domain.RoleFreelancer)},
		{Path: "/find-work", Name: "find_work", Policy: domain.RoleOnly(domain.RoleFreelancer)},
		{Path: "/my-proposals", Name: "my_proposals", Policy: domain.RoleOnly(domain.RoleFreelancer)},

		{Path: "/profile", Name: "profile", Policy: domain.DefaultRoutePolicy()},
		{Path: "/messages", Name: "messages", Policy: domain.DefaultRoutePolicy()},
	}
}

// PageHandler renders page view descriptors once the guard let a request through.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Render returns the handler for p.
func (h *PageHandler) Render(p Page) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := pageResponse{Page: p.Name, Path: p.Path, View: domain.ViewPage}

		if s := middleware.SessionFrom(c); s != nil {
			resp.Role, _ = s.Credentials.CurrentRole(c.Request().Context())
		}
		if state, ok := c.Get(middleware.StateKey).(domain.SessionState); ok {
			resp.Status = state.Status.String()
		}

		return c.JSON(http.StatusOK, resp)
	}
}
