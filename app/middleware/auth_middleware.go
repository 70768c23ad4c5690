// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
)

// Locals keys set by the auth middleware
const (
	LocalSubject     = "subject"
	LocalRole        = "role"
	LocalTokenID     = "token_id"
	LocalTokenClaims = "token_claims"
)

// AuthMiddleware validates bearer tokens for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// bearerToken extracts the token; code is empty on success
func bearerToken(c fiber.Ctx) (token, message, code string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header is required", "MISSING_AUTHORIZATION_HEADER"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT"
	}
	token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", "Access token is required", "MISSING_ACCESS_TOKEN"
	}
	return token, "", ""
}

func storeClaims(c fiber.Ctx, claims *services.TokenClaims) {
	c.Locals(LocalSubject, claims.Subject)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalTokenID, claims.TokenID)
	c.Locals(LocalTokenClaims, claims)
}

// Authenticate rejects requests without a valid bearer token
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, message, code := bearerToken(c)
		if code != "" {
			return unauthorized(c, message, code)
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return unauthorized(c, "Access token has expired", "TOKEN_EXPIRED")
			case errors.Is(err, services.ErrTokenRevoked):
				return unauthorized(c, "Access token has been revoked", "TOKEN_REVOKED")
			case errors.Is(err, services.ErrTokenInvalid):
				return unauthorized(c, "Invalid access token", "TOKEN_INVALID")
			default:
				return unauthorized(c, "Token validation failed", "TOKEN_VALIDATION_FAILED")
			}
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth stores claims when a valid token is present and never rejects
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, _, code := bearerToken(c)
		if code != "" {
			return c.Next()
		}
		if claims, err := m.tokenService.ValidateToken(token); err == nil {
			storeClaims(c, claims)
		}
		return c.Next()
	}
}

// RequireRole must run after Authenticate
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := GetRoleFromContext(c)
		if !ok {
			return unauthorized(c, "Authentication required", "AUTHENTICATION_REQUIRED")
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Insufficient permissions",
				Error:   dto.ErrorDetail{Code: "FORBIDDEN"},
			})
		}
		return c.Next()
	}
}

// GetSubjectFromContext returns the authenticated subject
func GetSubjectFromContext(c fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(LocalSubject).(string)
	return subject, ok && subject != ""
}

func GetRoleFromContext(c fiber.Ctx) (string, bool) {
	role, ok := c.Locals(LocalRole).(string)
	return role, ok && role != ""
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.TokenClaims, bool) {
	claims, ok := c.Locals(LocalTokenClaims).(*services.TokenClaims)
	return claims, ok
}
