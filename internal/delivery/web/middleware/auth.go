package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// LoginPath is where anonymous visitors are sent by RequireLogin.
const LoginPath = "/login/"

// RequireLogin redirects anonymous visitors to the login page, keeping the requested path in next.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) != nil {
			return next(c)
		}

		return c.Redirect(http.StatusFound, LoginRedirectURL(c.Request().URL.RequestURI()))
	}
}

// LoginRedirectURL builds the login URL that returns to path after a successful login.
func LoginRedirectURL(path string) string {
	return LoginPath + "?" + url.Values{"next": {path}}.Encode()
}

// SafeNext returns next when it is a local absolute path, else fallback.
func SafeNext(next, fallback string) string {
	if len(next) == 0 || next[0] != '/' {
		return fallback
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return fallback
	}

	return next
}
