package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fertiq/pkg/auth/service"
)

// SessionCookie must match the cookie the auth controller sets.
const SessionCookie = "FQ_SESSION"

// LoadUser resolves the session cookie (when present) and puts the user into
// the request context. It never rejects: pages that need a login use
// RequireLogin on top.
func LoadUser(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if u, err := auth.UserForToken(ck.Value); err == nil {
					c.Set("user_id", u.ID)
					c.Set("user_name", u.Name)
				}
			}
			return next(c)
		}
	}
}

// RequireLogin rejects requests that did not resolve to a user.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("user_id").(uint); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Please log in first.", "redirect": "/acountlogin",
				})
			}
			return next(c)
		}
	}
}
