package middleware

import (
	"github.com/labstack/echo/v4"
)

// Bearer sets the Authorization header of proxied requests from the
// browser's current token. The caller's own header is dropped so a page
// can never act with a token other than the current role's; 401s from
// upstream pass through untouched.
func Bearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del(echo.HeaderAuthorization)
			req.Header.Del(echo.HeaderCookie)

			if s := SessionFrom(c); s != nil {
				if token, ok := s.Credentials.CurrentToken(req.Context()); ok && token != "" {
					req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
				}
			}
			return next(c)
		}
	}
}
