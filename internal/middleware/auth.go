package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/dto"
	"go-storefront/internal/service"
)

// TokenCookieName is the session cookie issued at login.
const TokenCookieName = "token"

const claimsContextKey = "user"

// JWT verifies the session cookie and attaches the decoded claims to the
// request context. Routes registered without it form the public allow-list.
func JWT(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized! No token provided."))
			}

			claims, err := auth.ParseToken(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized! Invalid or expired token."))
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRole gates a route group on the role claim. Replaces per-route
// role conditionals with one explicit capability check.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil || claims.Role != role {
				return c.JSON(http.StatusForbidden, dto.Fail("Forbidden! Insufficient permissions."))
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the authenticated identity, or nil on public
// routes.
func ClaimsFromContext(c echo.Context) *service.Claims {
	claims, _ := c.Get(claimsContextKey).(*service.Claims)
	return claims
}
