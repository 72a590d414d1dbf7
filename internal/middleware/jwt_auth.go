package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "user"

// JWTAuthMiddleware checks for a valid HS256 JWT and stores its claims in the context.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("missing Authorization header: %w", models.ErrUnauthorized)
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fmt.Errorf("invalid Authorization header format: %w", models.ErrUnauthorized)
			}

			claims := &models.JwtCustomClaims{}
			token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return fmt.Errorf("token expired: %w", models.ErrUnauthorized)
				}
				return fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated users without the admin role. It must
// run after JWTAuthMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication is required")
			}
			if claims.Role != models.RoleAdmin {
				return fmt.Errorf("role %q: %w", claims.Role, models.ErrForbidden)
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by JWTAuthMiddleware.
func ClaimsFrom(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(claimsKey).(*models.JwtCustomClaims)
	return claims, ok
}
